package application

import (
	"errors"
	"fmt"
)

// Step identifies the pipeline stage an error came from, so diagnostics can
// name exactly what failed.
type Step string

const (
	StepRecord          Step = "record"
	StepTranscribe      Step = "transcribe"
	StepExtract         Step = "extract"
	StepPublishPage     Step = "publish-page"
	StepPublishCalendar Step = "publish-calendar"
)

type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the pipeline step err originated from, if any.
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return "", false
}

func fail(step Step, err error) error {
	return &StepError{Step: step, Err: err}
}
