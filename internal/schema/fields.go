package schema

// Suggestion group keys. The set is fixed; groups are never created at runtime.
const (
	SuggestMeals        = "meals"
	SuggestActivities   = "activities"
	SuggestPersonalCare = "personalCare"
)

// defaultFields is the full diary field configuration. Sliders default to
// their midpoint; body measurements carry sensible baselines that stay
// stable day to day.
var defaultFields = []Field{
	// basic
	{ID: "location", Type: TypeText, Section: SectionBasic, ExportGroup: "environment", ExportKey: "location", Label: "Location"},
	{ID: "weather", Type: TypeText, Section: SectionBasic, ExportGroup: "environment", ExportKey: "weather", Label: "Weather"},
	{ID: "temperatureC", Type: TypeFloat, Section: SectionBasic, ExportGroup: "environment", ExportKey: "temperature_c", Label: "Temperature (°C)"},

	// body
	{ID: "weightKg", Type: TypeFloat, Section: SectionBody, Default: "72", ExportGroup: "body_measurements", ExportKey: "weight_kg", Label: "Weight (kg)"},
	{ID: "heightCm", Type: TypeFloat, Section: SectionBody, Default: "178", ExportGroup: "body_measurements", ExportKey: "height_cm", Label: "Height (cm)"},
	{ID: "sleepHours", Type: TypeFloat, Section: SectionBody, Default: "8", ExportGroup: "health_and_fitness", ExportKey: "sleep_hours", Label: "Sleep (hours)"},
	{ID: "waterLiters", Type: TypeFloat, Section: SectionBody, ExportGroup: "health_and_fitness", ExportKey: "water_liters", Label: "Water (L)"},
	{ID: "steps", Type: TypeInt, Section: SectionBody, ExportGroup: "health_and_fitness", ExportKey: "steps", Label: "Steps"},
	{ID: "exerciseMinutes", Type: TypeInt, Section: SectionBody, ExportGroup: "health_and_fitness", ExportKey: "exercise_minutes", Label: "Exercise (min)"},
	{ID: "energyLevel", Type: TypeScale, Section: SectionBody, Default: "5", ExportGroup: "health_and_fitness", ExportKey: "energy_level", Label: "Energy"},

	// mind
	{ID: "mood", Type: TypeScale, Section: SectionMind, Default: "5", ExportGroup: "mental_and_emotional_health", ExportKey: "mood", Label: "Mood"},
	{ID: "stressLevel", Type: TypeScale, Section: SectionMind, Default: "5", ExportGroup: "mental_and_emotional_health", ExportKey: "stress_level", Label: "Stress"},
	{ID: "gratitude", Type: TypeText, Section: SectionMind, ExportGroup: "mental_and_emotional_health", ExportKey: "gratitude", Label: "Gratitude"},
	{ID: "meditationMinutes", Type: TypeInt, Section: SectionMind, ExportGroup: "mental_and_emotional_health", ExportKey: "meditation_minutes", Label: "Meditation (min)"},
	// Personal-care fields sit in the mind section and are also tracked
	// by the personalCare suggestion group.
	{ID: "showered", Type: TypeBool, Section: SectionMind, ExportGroup: "personal_care", ExportKey: "showered", Label: "Showered"},
	{ID: "skincare", Type: TypeText, Section: SectionMind, ExportGroup: "personal_care", ExportKey: "skincare", SuggestGroup: SuggestPersonalCare, Label: "Skincare"},
	{ID: "haircare", Type: TypeText, Section: SectionMind, ExportGroup: "personal_care", ExportKey: "haircare", SuggestGroup: SuggestPersonalCare, Label: "Haircare"},

	// diet
	{ID: "breakfast", Type: TypeText, Section: SectionDiet, ExportGroup: "diet_and_nutrition", ExportKey: "breakfast", SuggestGroup: SuggestMeals, Label: "Breakfast"},
	{ID: "lunch", Type: TypeText, Section: SectionDiet, ExportGroup: "diet_and_nutrition", ExportKey: "lunch", SuggestGroup: SuggestMeals, Label: "Lunch"},
	{ID: "dinner", Type: TypeText, Section: SectionDiet, ExportGroup: "diet_and_nutrition", ExportKey: "dinner", SuggestGroup: SuggestMeals, Label: "Dinner"},
	{ID: "snacks", Type: TypeText, Section: SectionDiet, ExportGroup: "diet_and_nutrition", ExportKey: "snacks", SuggestGroup: SuggestMeals, Label: "Snacks"},
	{ID: "caffeineCups", Type: TypeInt, Section: SectionDiet, ExportGroup: "diet_and_nutrition", ExportKey: "caffeine_cups", Label: "Caffeine (cups)"},
	{ID: "activities", Type: TypeText, Section: SectionDiet, ExportGroup: "activities_and_productivity", ExportKey: "activities", SuggestGroup: SuggestActivities, Label: "Activities"},
	{ID: "productivityScore", Type: TypeScale, Section: SectionDiet, Default: "5", ExportGroup: "activities_and_productivity", ExportKey: "productivity_score", Label: "Productivity"},

	// summary
	{ID: "keyEvents", Type: TypeText, Section: SectionSummary, ExportGroup: "additional_notes", ExportKey: "key_events", Label: "Key events"},
	{ID: "daySummary", Type: TypeText, Section: SectionSummary, ExportKey: "daily_activity_summary", Label: "Summary"},
}

// Default returns the registry for the full diary form.
func Default() *Registry {
	r, err := New(defaultFields)
	if err != nil {
		// The built-in field list is static; a failure here is a
		// programming error caught by tests.
		panic(err)
	}
	return r
}
