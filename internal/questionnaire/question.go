package questionnaire

// Kind identifies how an answer value is typed
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBoolean
	KindSingle // one option from Question.Options
	KindMulti  // any subset of Question.Options
	KindScale  // integer in [Min, Max]
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindSingle:
		return "single-choice"
	case KindMulti:
		return "multi-choice"
	case KindScale:
		return "scale"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Section groups questions by the pillar that consumes them
type Section string

const (
	SectionProfile   Section = "profile"
	SectionExercise  Section = "exercise"
	SectionNutrition Section = "nutrition"
	SectionWellbeing Section = "wellbeing"
	SectionSleep     Section = "sleep"
	SectionGeneral   Section = "general"
)

// Question IDs
const (
	Age            = "age"
	Gender         = "gender"
	Weight         = "weight" // kg
	Height         = "height" // cm
	BodyFat        = "bodyFat"
	Goal           = "goal"
	CarbPreference = "carbPreference"
	ActivityLevel  = "activityLevel"

	ExerciseFrequency = "exerciseFrequency"
	ExerciseIntensity = "exerciseIntensity"
	ExerciseDuration  = "exerciseDuration"
	StrengthTraining  = "strengthTraining"
	RecoveryDays      = "recoveryDays"

	VegetableServings = "vegetableServings"
	FruitServings     = "fruitServings"
	WaterIntake       = "waterIntake" // glasses per day
	ProcessedFood     = "processedFood"
	SugaryDrinks      = "sugaryDrinks" // per week
	MealsPerDay       = "mealsPerDay"

	StressLevel      = "stressLevel"
	Mood             = "mood"
	SocialConnection = "socialConnection"
	Mindfulness      = "mindfulness"
	Smoking          = "smoking"
	AlcoholPerWeek   = "alcoholPerWeek"

	SleepHours      = "sleepHours"
	SleepQuality    = "sleepQuality"
	ScreenBeforeBed = "screenBeforeBed"
	WakeRefreshed   = "wakeRefreshed"

	HealthConditions = "healthConditions"
	Notes            = "notes"
)

// Option values shared with the scoring tables
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"

	CarbsLow      = "low"
	CarbsModerate = "moderate"
	CarbsHigh     = "high"

	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "veryActive"
)

// Question describes one entry of the questionnaire
type Question struct {
	ID      string   `json:"id"`
	Kind    Kind     `json:"kind"`
	Section Section  `json:"section"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"` // KindSingle and KindMulti
	Min     float64  `json:"min,omitempty"`     // KindNumber and KindScale, inclusive
	Max     float64  `json:"max,omitempty"`
}

// HasOption reports whether v is one of the question's options
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

var catalog = []Question{
	{ID: Age, Kind: KindNumber, Section: SectionProfile, Prompt: "How old are you?", Min: 1, Max: 120},
	{ID: Gender, Kind: KindSingle, Section: SectionProfile, Prompt: "Gender", Options: []string{GenderMale, GenderFemale, GenderOther}},
	{ID: Weight, Kind: KindNumber, Section: SectionProfile, Prompt: "Weight (kg)", Min: 1, Max: 500},
	{ID: Height, Kind: KindNumber, Section: SectionProfile, Prompt: "Height (cm)", Min: 30, Max: 300},
	{ID: BodyFat, Kind: KindNumber, Section: SectionProfile, Prompt: "Body fat percentage, if known", Min: 1, Max: 80},
	{ID: Goal, Kind: KindSingle, Section: SectionProfile, Prompt: "Primary goal", Options: []string{GoalLose, GoalMaintain, GoalGain}},
	{ID: CarbPreference, Kind: KindSingle, Section: SectionProfile, Prompt: "Carbohydrate preference", Options: []string{CarbsLow, CarbsModerate, CarbsHigh}},
	{ID: ActivityLevel, Kind: KindSingle, Section: SectionProfile, Prompt: "Daily activity level",
		Options: []string{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}},

	{ID: ExerciseFrequency, Kind: KindSingle, Section: SectionExercise, Prompt: "Workouts per week", Options: []string{"none", "1-2", "3-4", "5+"}},
	{ID: ExerciseIntensity, Kind: KindSingle, Section: SectionExercise, Prompt: "Typical workout intensity", Options: []string{"low", "moderate", "high"}},
	{ID: ExerciseDuration, Kind: KindSingle, Section: SectionExercise, Prompt: "Typical workout length (minutes)", Options: []string{"<15", "15-30", "30-60", "60+"}},
	{ID: StrengthTraining, Kind: KindBoolean, Section: SectionExercise, Prompt: "Do you strength train?"},
	{ID: RecoveryDays, Kind: KindNumber, Section: SectionExercise, Prompt: "Rest days per week", Min: 0, Max: 7},

	{ID: VegetableServings, Kind: KindNumber, Section: SectionNutrition, Prompt: "Vegetable servings per day", Min: 0, Max: 20},
	{ID: FruitServings, Kind: KindNumber, Section: SectionNutrition, Prompt: "Fruit servings per day", Min: 0, Max: 20},
	{ID: WaterIntake, Kind: KindNumber, Section: SectionNutrition, Prompt: "Glasses of water per day", Min: 0, Max: 30},
	{ID: ProcessedFood, Kind: KindSingle, Section: SectionNutrition, Prompt: "How often do you eat processed food?",
		Options: []string{"never", "rarely", "sometimes", "often", "daily"}},
	{ID: SugaryDrinks, Kind: KindNumber, Section: SectionNutrition, Prompt: "Sugary drinks per week", Min: 0, Max: 100},
	{ID: MealsPerDay, Kind: KindNumber, Section: SectionNutrition, Prompt: "Meals per day", Min: 1, Max: 10},

	{ID: StressLevel, Kind: KindScale, Section: SectionWellbeing, Prompt: "Stress level (1 calm - 10 overwhelmed)", Min: 1, Max: 10},
	{ID: Mood, Kind: KindScale, Section: SectionWellbeing, Prompt: "Overall mood (1 low - 10 great)", Min: 1, Max: 10},
	{ID: SocialConnection, Kind: KindScale, Section: SectionWellbeing, Prompt: "How connected do you feel to others? (1-5)", Min: 1, Max: 5},
	{ID: Mindfulness, Kind: KindBoolean, Section: SectionWellbeing, Prompt: "Do you practice mindfulness or meditation?"},
	{ID: Smoking, Kind: KindBoolean, Section: SectionWellbeing, Prompt: "Do you smoke?"},
	{ID: AlcoholPerWeek, Kind: KindNumber, Section: SectionWellbeing, Prompt: "Alcoholic drinks per week", Min: 0, Max: 100},

	{ID: SleepHours, Kind: KindNumber, Section: SectionSleep, Prompt: "Average hours of sleep", Min: 0, Max: 24},
	{ID: SleepQuality, Kind: KindScale, Section: SectionSleep, Prompt: "Sleep quality (1-5)", Min: 1, Max: 5},
	{ID: ScreenBeforeBed, Kind: KindSingle, Section: SectionSleep, Prompt: "Screen time in the hour before bed",
		Options: []string{"none", "under30", "30to60", "over60"}},
	{ID: WakeRefreshed, Kind: KindBoolean, Section: SectionSleep, Prompt: "Do you usually wake up refreshed?"},

	{ID: HealthConditions, Kind: KindMulti, Section: SectionGeneral, Prompt: "Existing health conditions",
		Options: []string{"none", "diabetes", "hypertension", "heartDisease", "asthma", "arthritis", "other"}},
	{ID: Notes, Kind: KindText, Section: SectionGeneral, Prompt: "Anything else we should know?"},
}

var byID = func() map[string]Question {
	m := make(map[string]Question, len(catalog))
	for _, q := range catalog {
		m[q.ID] = q
	}
	return m
}()

// Questions returns the questionnaire in display order
func Questions() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the question with the given ID
func Lookup(id string) (Question, bool) {
	q, ok := byID[id]
	return q, ok
}
