package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/swiftmeet/swiftmeet-api/models"
)

// BuildConfirmationPDF renders the booking confirmation document served by
// the bookings download endpoint. The booking must have Slot.Service and
// User loaded.
func BuildConfirmationPDF(booking *models.Booking) ([]byte, error) {
	slot := booking.Slot
	service := slot.Service

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SwiftMeet Booking Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SwiftMeet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Booking Confirmation", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 8, value, "", "L", false)
	}

	row("Reference", booking.Reference)
	row("Booked by", booking.User.Name)
	row("Service", service.Name)
	row("Type", service.Type)
	if service.Specialty != "" {
		row("Specialty", service.Specialty)
	}
	row("Address", service.Address)
	row("Starts", slot.StartsAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	row("Ends", slot.EndsAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	row("Status", string(booking.Status))
	row("Booked at", booking.CreatedAt.Format("02 Jan 2006 15:04"))

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"Please arrive on time. Arrivals can be marked up to %d minutes after the start time before the booking counts as a no-show.",
		int(GracePeriod.Minutes())), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
