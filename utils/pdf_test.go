package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

func TestBuildConfirmationPDF(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		Reference: "ref-1234",
		Status:    models.StatusBooked,
		User:      models.User{Name: "Avery Quinn"},
		Slot: models.Slot{
			StartsAt: start,
			EndsAt:   start.Add(30 * time.Minute),
			Service: models.Service{
				Name:    "Dental Checkup",
				Type:    "dentist",
				Address: "12 Main Street",
			},
		},
	}

	pdfBytes, err := utils.BuildConfirmationPDF(booking)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)

	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestBuildConfirmationPDFWithSpecialty(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		Reference: "ref-5678",
		Status:    models.StatusArrived,
		User:      models.User{Name: "Avery Quinn"},
		Slot: models.Slot{
			StartsAt: start,
			EndsAt:   start.Add(time.Hour),
			Service: models.Service{
				Name:      "Eye Exam",
				Type:      "optician",
				Specialty: "pediatric",
				Address:   "44 High Street",
			},
		},
	}

	pdfBytes, err := utils.BuildConfirmationPDF(booking)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
