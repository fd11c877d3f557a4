package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("items[0].name", "is required")
	ve.AddFieldError("items[0].type", "is invalid")
	ve.AddFieldErrorf("items[1].max_levels.epic", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "items[0].name: is required")
	s.Assert().Contains(ve.Error(), "items[0].type: is invalid")
	s.Assert().Contains(ve.Error(), "items[1].max_levels.epic: must be at least 1")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationErrorIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("b", "second")
	ve.AddFieldError("a", "first")

	s.Assert().Equal("validation failed: a: first; b: second", ve.Error())
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("grpc.port", "must be between %d and %d", 1, 65535).
		RequiredField("redis.endpoint")

	s.Assert().True(vb.HasErrors())
	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Empty(errors.GetReason(err))
}

func (s *ValidationTestSuite) TestValidationBuilderWithReason() {
	err := errors.NewValidationBuilder().
		WithReason("DATA_ERROR").
		Field("items[2].transform_range", "is required").
		Build()

	s.Require().Error(err)
	s.Assert().Equal("DATA_ERROR", errors.GetReason(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().False(vb.HasErrors())
	s.Assert().Nil(vb.Build())
}
