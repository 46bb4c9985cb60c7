package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateRandomComplaint(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := GenerateRandomComplaint()

		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Description)

		if c.Status == domain.StatusResolved {
			require.NotNil(t, c.ResolvedDate)
			assert.True(t, c.ResolvedDate.After(c.DateSubmitted))
		} else {
			assert.Nil(t, c.ResolvedDate)
		}
	}
}
