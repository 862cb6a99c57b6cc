package onboarding

import (
	"context"
	"fmt"
	"horoscopus-web/internal/birthdata"
	"horoscopus-web/internal/providers/horoscopus"
	"log/slog"
	"time"
)

// Submitter receives validated birth data
type Submitter interface {
	Submit(ctx context.Context, values birthdata.Values) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, values birthdata.Values) error

func (fn SubmitterFunc) Submit(ctx context.Context, values birthdata.Values) error {
	return fn(ctx, values)
}

// StubSubmitter logs the values and waits, standing in for persistence
type StubSubmitter struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewStubSubmitter(delay time.Duration, logger *slog.Logger) *StubSubmitter {
	return &StubSubmitter{
		delay:  delay,
		logger: logger.With("component", "stub-submitter"),
	}
}

func (s *StubSubmitter) Submit(ctx context.Context, values birthdata.Values) error {
	s.logger.Info("onboarding submission",
		"birth_date", values.BirthDate,
		"birth_time", values.BirthTime,
		"timezone", values.Timezone,
		"birth_location_id", values.BirthLocationID,
		"current_location_id", values.CurrentLocationID,
	)

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProfileCreator is implemented by the Horoscopus API client
type ProfileCreator interface {
	CreateProfile(ctx context.Context, req horoscopus.ProfileRequest) (*horoscopus.ProfileResponse, error)
}

// APISubmitter stores the birth data as an account profile
type APISubmitter struct {
	profiles ProfileCreator
	logger   *slog.Logger
}

func NewAPISubmitter(profiles ProfileCreator, logger *slog.Logger) *APISubmitter {
	return &APISubmitter{
		profiles: profiles,
		logger:   logger.With("component", "api-submitter"),
	}
}

func (s *APISubmitter) Submit(ctx context.Context, values birthdata.Values) error {
	birth, err := values.BirthDatetime()
	if err != nil {
		return fmt.Errorf("failed to build birth datetime: %w", err)
	}

	profile, err := s.profiles.CreateProfile(ctx, horoscopus.ProfileRequest{
		BirthDatetime:   birth,
		BirthLocation:   values.BirthLocationID,
		CurrentLocation: values.CurrentLocationID,
		Timezone:        values.Timezone,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("profile created", "profile_id", profile.ID)
	return nil
}
