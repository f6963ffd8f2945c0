package validatorx_test

import (
	"testing"

	validatorx "github.com/muhammadheryan/property-listing/utils/validator"
	"github.com/stretchr/testify/require"
)

type statusHolder struct {
	Name   string `validate:"required"`
	Status string `validate:"listing_status"`
}

func TestListingStatusTag(t *testing.T) {
	for _, status := range []string{"", "en cours", "vendu", "loué", "retiré"} {
		require.NoError(t, validatorx.ValidateStruct(&statusHolder{Name: "x", Status: status}), status)
	}

	err := validatorx.ValidateStruct(&statusHolder{Name: "x", Status: "sold"})
	require.Error(t, err)
	require.True(t, validatorx.HasTagFailure(err, "listing_status"))
	require.Equal(t, []string{"status"}, validatorx.FailedFields(err))
}

func TestFailedFields(t *testing.T) {
	err := validatorx.ValidateStruct(&statusHolder{})
	require.Error(t, err)
	require.False(t, validatorx.HasTagFailure(err, "listing_status"))
	require.Equal(t, []string{"name"}, validatorx.FailedFields(err))

	require.Nil(t, validatorx.FailedFields(nil))
}
