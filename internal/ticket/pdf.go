// Package ticket renders the e-ticket of a booking as a PDF.
package ticket

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/iliyamo/matchday-tickets/internal/booking"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// Render writes the e-ticket of b to w.  The price block shows the
// service fee on top of the stored total, as the checkout screen did.
func Render(w io.Writer, b model.Booking) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	draw(pdf, b)
	return pdf.Output(w)
}

// draw lays out the ticket.  The core fonts are cp1252, so every string
// goes through tr; runes outside that code page print as a dot.
func draw(pdf *gofpdf.Fpdf, b model.Booking) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("E-Ticket "+b.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(b.Event.Title))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Booking  : " + b.ID,
		"Venue    : " + b.Event.Venue,
		"Date     : " + b.Event.StartsAt.Format("Mon, 02 Jan 2006 15:04"),
		"Status   : " + strings.ToUpper(string(b.Status)),
		"Booked at: " + b.BookedAt.Format("2006-01-02 15:04"),
	} {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Seats (%d)", len(b.Seats)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, s := range b.Seats {
		pdf.Cell(0, 6, tr(fmt.Sprintf("%-5s %-10s %s", s.ID, s.Category, s.PriceCents)))
		pdf.Ln(6)
	}

	if len(b.FoodOrders) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Food & Drinks")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, o := range b.FoodOrders {
			pdf.Cell(0, 6, tr(fmt.Sprintf("%dx %s  %s", o.Quantity, o.Item.Name, o.LineTotal())))
			pdf.Ln(6)
		}
	}

	fee := booking.ServiceFee(b.TotalCents)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Subtotal    : "+b.TotalCents.String())
	pdf.Ln(6)
	pdf.Cell(0, 6, "Service fee : "+fee.String())
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total       : "+(b.TotalCents+fee).String())
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this ticket at the venue entrance. Cancelled bookings are not valid for entry.", "", "", false)
}
