package service

import "github.com/maternalcare/sms-reminders/internal/model"

// EducationalContent returns the fixed health-tip catalog. The weekly job
// only logs it for now; delivering it over SMS is an extension point.
func EducationalContent() []model.TipCategory {
	return []model.TipCategory{
		{
			Category: "Nutrition",
			Tips: []string{
				"Eat a balanced diet rich in iron and folic acid",
				"Include plenty of fruits and vegetables",
				"Stay hydrated by drinking 8-10 glasses of water daily",
				"Avoid raw or undercooked foods",
			},
		},
		{
			Category: "Health Care",
			Tips: []string{
				"Attend all antenatal visits regularly",
				"Report any unusual symptoms to your health worker",
				"Keep your environment clean to prevent infections",
				"Get adequate rest and sleep",
			},
		},
		{
			Category: "Exercise",
			Tips: []string{
				"Engage in light physical activity as recommended",
				"Practice prenatal yoga or walking",
				"Avoid heavy lifting and strenuous activities",
				"Listen to your body and rest when needed",
			},
		},
	}
}
