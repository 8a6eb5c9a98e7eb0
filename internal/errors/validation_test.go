package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tower-defense/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorMessageIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("tower.range", "must be positive")
	ve.AddFieldError("lives", "is required")

	s.True(ve.HasErrors())
	s.Equal("validation failed: lives: is required; tower.range: must be positive", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestNumericValidators() {
	modes := []string{"tiered", "legacy"}
	testCases := []struct {
		name    string
		apply   func(vb *errors.ValidationBuilder)
		wantErr bool
	}{
		{"range ok", func(vb *errors.ValidationBuilder) { errors.ValidateRange("n", 5, 1, 10, vb) }, false},
		{"range low", func(vb *errors.ValidationBuilder) { errors.ValidateRange("n", 0, 1, 10, vb) }, true},
		{"positive ok", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 0.5, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 0, vb) }, true},
		{"probability ok", func(vb *errors.ValidationBuilder) { errors.ValidateProbability("p", 1, vb) }, false},
		{"probability high", func(vb *errors.ValidationBuilder) { errors.ValidateProbability("p", 1.2, vb) }, true},
		{"enum ok", func(vb *errors.ValidationBuilder) { errors.ValidateEnum("e", "tiered", modes, vb) }, false},
		{"enum bad", func(vb *errors.ValidationBuilder) { errors.ValidateEnum("e", "x", modes, vb) }, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.apply(vb)
			err := vb.Build()
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
			} else {
				s.NoError(err)
			}
		})
	}
}
