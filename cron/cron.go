package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking
// reminders and the no-show sweep
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for bookings starting in the next hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	// Sweep overdue bookings every five minutes
	_, err = c.AddFunc("*/5 * * * *", sweepMissedBookings)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders and no-show sweep")
}

// sendBookingReminders checks for upcoming bookings and sends reminders
func sendBookingReminders() {
	var bookings []models.Booking
	now := time.Now()
	// Look for bookings starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("User").Preload("Slot.Service").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("bookings.status = ? AND slots.starts_at BETWEEN ? AND ?", models.StatusBooked, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.User.Email)
	}
}

// sweepMissedBookings marks overdue bookings as no-shows and rebooks
// first-time misses onto the next open slot
func sweepMissedBookings() {
	reschedules, err := utils.ProcessMissedBookings(db.DB, 0, time.Now())
	if err != nil {
		log.Printf("Error sweeping missed bookings: %v", err)
		return
	}
	if len(reschedules) == 0 {
		return
	}

	log.Printf("Swept %d missed bookings", len(reschedules))

	for _, r := range reschedules {
		if r.New == nil {
			continue
		}
		if err := sendRescheduleEmail(&r); err != nil {
			log.Printf("Failed to send reschedule notice for booking %d: %v", r.Old.ID, err)
		}
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Booking - %s", booking.Slot.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming booking scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Address:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. Bookings not marked as arrived within 15
		minutes of the start time are treated as no-shows.</p>
		<p>Best regards,</p>
		<p>The SwiftMeet Team</p>
	`, booking.User.Name, booking.Reference, booking.Slot.Service.Name, booking.Slot.Service.Address,
		booking.Slot.StartsAt.Format("2006-01-02 15:04:05"),
		booking.Slot.EndsAt.Format("2006-01-02 15:04:05"))

	return utils.SendEmail(booking.User.Email, subject, body)
}

// sendRescheduleEmail tells the user their missed booking was moved
func sendRescheduleEmail(r *utils.Reschedule) error {
	subject := "Your missed booking was rescheduled"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You did not arrive for your booking, so we moved you to the next
		available slot.</p>
		<p><strong>New booking:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>This was a one-time courtesy; a second miss will not be rescheduled.</p>
		<p>Best regards,</p>
		<p>The SwiftMeet Team</p>
	`, r.Old.User.Name, r.New.Reference,
		r.New.Slot.StartsAt.Format("2006-01-02 15:04:05"),
		r.New.Slot.EndsAt.Format("2006-01-02 15:04:05"))

	return utils.SendEmail(r.Old.User.Email, subject, body)
}
