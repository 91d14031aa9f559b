// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendUpcomingReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendUpcomingReminders messages every customer with a pending or confirmed
// reservation tomorrow, skipping those already reminded.
func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting appointment reminder processing...")

	dayStart, dayEnd := utils.DayRange(time.Now().AddDate(0, 0, 1))

	var reservations []models.Reservation
	err := s.db.Preload("Pet").
		Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd).
		Where("status IN ?", []models.ReservationStatus{
			models.ReservationPending,
			models.ReservationConfirmed,
		}).
		Find(&reservations).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's reservations: %v", err)
		return
	}

	for _, r := range reservations {
		var alreadySent int64
		if err := s.db.Model(&models.ReminderLog{}).
			Where("reservation_id = ? AND status = ?", r.ID, "sent").
			Count(&alreadySent).Error; err == nil && alreadySent > 0 {
			continue
		}
		s.sendReminder(r)
	}

	log.Println("Appointment reminder processing completed")
}

func (s *ReminderService) sendReminder(r models.Reservation) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", r.Pet.CustomerID).Error; err != nil {
		log.Printf("Reservation %s: customer lookup failed: %v", r.Code, err)
		return
	}

	if !utils.ValidatePhone(customer.Phone) {
		log.Printf("Reservation %s: skipping reminder, unusable phone %q", r.Code, customer.Phone)
		return
	}

	message := fmt.Sprintf("Hola %s, te recordamos la cita de %s mañana a las %s en PetGlow. ¡Te esperamos!",
		customer.FirstName, r.Pet.Name, r.StartsAt.Format("15:04"))

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	to := customer.Phone
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder for %s: %v", r.Code, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent for %s, SID: %s", r.Code, *resp.Sid)
	} else {
		log.Printf("Reminder sent for %s, but no SID returned", r.Code)
	}

	reminderLog := models.ReminderLog{
		ReservationID: r.ID,
		CustomerID:    customer.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for %s: %v", r.Code, err)
	}
}
