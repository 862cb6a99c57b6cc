package onboarding

// TimezoneOptions offered by the timezone select
var TimezoneOptions = []string{
	"UTC",
	"Europe/Moscow",
	"Europe/Kaliningrad",
	"Europe/Volgograd",
	"Asia/Yekaterinburg",
	"Asia/Omsk",
	"Asia/Krasnoyarsk",
	"Asia/Irkutsk",
	"Asia/Yakutsk",
	"Asia/Vladivostok",
	"Asia/Magadan",
	"Asia/Kamchatka",
	"America/New_York",
	"America/Los_Angeles",
	"Europe/London",
	"Europe/Berlin",
}
