package onboarding

import (
	"context"
	"fmt"
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/birthdata"
	"log/slog"
)

const (
	SuccessMessage = "Данные сохранены. Рассчитываем натальную карту…"
	FailureMessage = "Не удалось сохранить данные. Попробуйте ещё раз."
)

// Page runs submissions for a session's form. Submission failures, panics
// included, stop here: the busy flag is always cleared and the user gets
// an error toast.
type Page struct {
	submitter Submitter
	logger    *slog.Logger
}

func NewPage(submitter Submitter, logger *slog.Logger) *Page {
	return &Page{
		submitter: submitter,
		logger:    logger.With("component", "onboarding-page"),
	}
}

// Submit validates the form and, if valid, hands the values to the
// submitter. A second submit while one is running is rejected.
func (p *Page) Submit(ctx context.Context, s *Session) (birthdata.Result, error) {
	res := s.Form.Validate()
	if !res.OK() {
		return res, res.Err()
	}

	if err := s.Form.beginSubmit(); err != nil {
		return res, err
	}
	defer s.Form.endSubmit()

	if err := p.run(ctx, res.Values); err != nil {
		p.logger.Error("onboarding submission failed", "session", s.ID, "error", err)
		s.Toasts.Error(FailureMessage)
		return res, err
	}

	s.Toasts.Notify(SuccessMessage)
	return res, nil
}

func (p *Page) run(ctx context.Context, values birthdata.Values) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Submission("submit handler panicked", fmt.Errorf("%v", r)).WithOp("onboarding.Submit")
		}
	}()

	if err := p.submitter.Submit(ctx, values); err != nil {
		return apperr.Submission("submit handler failed", err).WithOp("onboarding.Submit")
	}
	return nil
}
