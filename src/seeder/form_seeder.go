package seeder

import (
	"context"
	"errors"
	"log"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/auth"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/utils"
)

const (
	DemoEmail    = "demo@formcraft.local"
	demoPassword = "formcraft-demo"
)

// SeedDemo creates a demo owner with sample forms unless the owner already
// exists. The password comes from SEED_DEMO_PASSWORD.
func SeedDemo(ctx context.Context, authSvc *auth.Service, users auth.UserStore, formSvc *forms.Service) error {
	if _, err := users.FindByEmail(ctx, DemoEmail); err == nil {
		log.Println("ℹ️ [Seeder] demo owner exists, skipping")
		return nil
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	res, err := authSvc.Register(ctx, models.RegisterRequest{
		Email:    DemoEmail,
		Password: utils.GetEnv("SEED_DEMO_PASSWORD", demoPassword),
		Name:     "Demo owner",
	})
	if err != nil {
		return err
	}
	owner := models.Principal{UserID: res.User.ID, Email: res.User.Email}

	for _, in := range sampleForms() {
		form, err := formSvc.CreateDraft(ctx, owner, in)
		if err != nil {
			return err
		}
		log.Printf("✅ [Seeder] %q (%s) status=%s", form.Title, form.ID, form.Status)
	}
	return nil
}

func field(t models.FieldTypeID, label string, required bool, options ...string) models.FormField {
	f := models.NewFormField(t)
	f.Label = label
	f.Required = required
	if t.SupportsOptions() {
		f.Options = options
	}
	return f
}

func sampleForms() []models.CreateFormInput {
	published := models.FormStatusPublished
	draft := models.FormStatusDraft
	str := func(s string) *string { return &s }

	feedback := models.FormSchema{Version: models.CurrentSchemaVersion, Fields: []models.FormField{
		field(models.FieldShortText, "What is your name?", true),
		field(models.FieldLongText, "Please describe your overall experience with this course.", true),
		field(models.FieldSingleSelect, "How would you rate the course difficulty?", true,
			"Very Easy", "Easy", "Moderate", "Difficult", "Very Difficult"),
		field(models.FieldMultiSelect, "Which aspects of the course did you find most helpful?", false,
			"Lectures", "Assignments", "Group Projects", "Office Hours", "Online Resources"),
		field(models.FieldNumber, "How many hours a week did you study?", false),
	}}

	event := models.FormSchema{Version: models.CurrentSchemaVersion, Fields: []models.FormField{
		field(models.FieldShortText, "Full Name", true),
		field(models.FieldShortText, "Email Address", true),
		field(models.FieldDate, "Arrival date", true),
		field(models.FieldSingleSelect, "Ticket type", true, "Standard", "Student", "VIP"),
	}}

	return []models.CreateFormInput{
		{
			Title:       str("Course Feedback Form"),
			Description: str("Please provide your feedback about the course and instructor"),
			Status:      &published,
			Schema:      &feedback,
		},
		{
			Title:       str("Tech Conference Registration"),
			Description: str("Register for the annual technology conference"),
			Status:      &draft,
			Schema:      &event,
		},
	}
}
