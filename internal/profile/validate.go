package profile

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidProfile = errors.New("invalid personality profile")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Input is the assessment payload: the three maps a profile is built from.
type Input struct {
	Traits         Traits         `json:"traits" validate:"dive,keys,oneof=introversion openness conscientiousness agreeableness neuroticism,endkeys,min=1,max=10"`
	EmotionalNeeds EmotionalNeeds `json:"emotionalNeeds" validate:"dive,keys,oneof=selfCompassion creativity adventure connection mindfulness growth relaxation confidence,endkeys"`
	Preferences    Preferences    `json:"preferences" validate:"dive,keys,oneof=morningPerson outdoorActivities socialActivities physicalActivities creativeActivities intellectualActivities,endkeys"`
}

// Validate rejects unknown keys and trait scores outside 1-10.
func (in *Input) Validate() error {
	if err := validatorInstance().Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, describe(err))
	}
	return nil
}

// describe flattens validator errors into one line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
