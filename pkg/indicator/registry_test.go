package indicator

import (
	"testing"

	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/stretchr/testify/suite"
)

// mockIndicator is a simple mock indicator for testing the registry
type mockIndicator struct {
	name types.IndicatorType
}

func newMockIndicator(name types.IndicatorType) *mockIndicator {
	return &mockIndicator{name: name}
}

func (m *mockIndicator) Name() types.IndicatorType {
	return m.name
}

func (m *mockIndicator) Config(params ...any) error {
	return nil
}

func (m *mockIndicator) Apply(f *frame.Frame) (*frame.Frame, error) {
	return f.Copy(), nil
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestNewIndicatorRegistry() {
	registry := NewIndicatorRegistry()
	suite.NotNil(registry)
	suite.Empty(registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestNewDefaultRegistry() {
	registry := NewDefaultRegistry()

	suite.Equal([]types.IndicatorType{
		types.IndicatorTypeEMA,
		types.IndicatorTypeEWMRSI,
		types.IndicatorTypeMACD,
		types.IndicatorTypeRSI,
	}, registry.ListIndicators())

	for _, name := range types.IndicatorTypes {
		indicator, err := registry.GetIndicator(name)
		suite.Require().NoError(err)
		suite.Equal(name, indicator.Name())
	}
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewIndicatorRegistry()

	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.RegisterIndicator(indicator)
	suite.NoError(err)

	retrieved, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(indicator, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterIndicatorDuplicate() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	suite.NoError(err)

	// Trying to register another indicator with the same name should fail
	err = registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	suite.Error(err)
	suite.Contains(err.Error(), "already registered")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetIndicatorNotFound() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.Contains(err.Error(), "not found")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	suite.NoError(err)

	err = registry.RemoveIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)

	// Should no longer be found
	_, err = registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)

	err = registry.RemoveIndicator(types.IndicatorTypeRSI)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestConcurrentAccess() {
	registry := NewIndicatorRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			indicatorType := types.IndicatorType(string(rune('A' + idx)))
			_ = registry.RegisterIndicator(newMockIndicator(indicatorType))
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	suite.Len(registry.ListIndicators(), 10)
}
