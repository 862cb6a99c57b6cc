package openstreetmap

// SearchResult is one entry of a Nominatim /search response in jsonv2 format
type SearchResult struct {
	PlaceId     int64     `json:"place_id"`
	Licence     string    `json:"licence"`
	OsmType     string    `json:"osm_type"`
	OsmId       int64     `json:"osm_id"`
	Lat         string    `json:"lat"`
	Lon         string    `json:"lon"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	PlaceRank   int       `json:"place_rank"`
	Importance  float64   `json:"importance"`
	Addresstype string    `json:"addresstype"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Address     Address   `json:"address"`
	ExtraTags   ExtraTags `json:"extratags"`
	Boundingbox []string  `json:"boundingbox"`
}

// ExtraTags holds the extratags=1 fields we read
type ExtraTags struct {
	Timezone string `json:"timezone"`
}

type Address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	Region       string `json:"region"`
	ISO31662Lvl4 string `json:"ISO3166-2-lvl4"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

// Locality picks the most specific settlement name available
func (a Address) Locality() string {
	for _, v := range []string{a.City, a.Town, a.Village, a.Hamlet, a.Municipality} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Area returns the first-level administrative area
func (a Address) Area() string {
	if a.State != "" {
		return a.State
	}
	return a.Region
}
