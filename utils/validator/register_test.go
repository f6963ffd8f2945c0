package validatorx

import (
	"testing"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestRegisterTags(t *testing.T) {
	require.NoError(t, registerTags(gpvalidator.New(), customTags))

	err := registerTags(gpvalidator.New(), map[string]gpvalidator.Func{"": validateListingStatus})
	require.Error(t, err)
	require.Contains(t, err.Error(), `register ""`)

	err = registerTags(gpvalidator.New(), map[string]gpvalidator.Func{"listing_status": nil})
	require.Error(t, err)
}

func TestInitRegistersDomainTags(t *testing.T) {
	require.NotPanics(t, Init)

	type holder struct {
		Status string `validate:"listing_status"`
	}
	require.NoError(t, v.Struct(&holder{Status: "vendu"}))
}
