package domain

type Goal struct {
	ID            int64    `json:"id"`
	UserID        int64    `json:"user_id"`
	Type          string   `json:"type"`
	Target        string   `json:"target"`
	TargetWeight  *float64 `json:"target_weight"`
	DurationWeeks int      `json:"duration_weeks"`
	Progress      int      `json:"progress"`
	StartDate     string   `json:"start_date"`
}

type GoalRequest struct {
	Type          string   `json:"type"`
	Target        string   `json:"target"`
	TargetWeight  *float64 `json:"target_weight"`
	DurationWeeks int      `json:"duration_weeks"`
}

type GoalTemplate struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Popular           bool   `json:"popular"`
	Recommended       bool   `json:"recommended"`
	NeedsTargetWeight bool   `json:"needs_target_weight"`
	Nutrition         string `json:"nutrition"`
	Exercise          string `json:"exercise"`
	Tips              string `json:"tips"`
}

var GoalTemplates = []GoalTemplate{
	{
		ID:                "weight-loss",
		Title:             "Weight Loss",
		Description:       "Burn fat and reduce overall body weight",
		Popular:           true,
		Recommended:       true,
		NeedsTargetWeight: true,
		Nutrition:         "Calorie deficit of 500 calories/day",
		Exercise:          "Cardio 3-5 times per week, strength training 2-3 times per week",
		Tips:              "Focus on high protein intake, control portion sizes",
	},
	{
		ID:                "muscle-gain",
		Title:             "Muscle Gain",
		Description:       "Build muscle mass and strength",
		Popular:           true,
		NeedsTargetWeight: true,
		Nutrition:         "Calorie surplus of 300-500 calories/day, high protein intake",
		Exercise:          "Heavy strength training 4-5 times per week, limited cardio",
		Tips:              "Progressive overload, adequate rest between workouts",
	},
	{
		ID:          "maintain-weight",
		Title:       "Maintain Weight",
		Description: "Maintain current weight while improving fitness",
		Nutrition:   "Balanced diet with maintenance calories",
		Exercise:    "Mix of cardio and strength training 3-4 times per week",
		Tips:        "Focus on nutrient-dense foods, regular exercise routine",
	},
	{
		ID:          "improve-fitness",
		Title:       "Improve Fitness",
		Description: "Enhance overall fitness and endurance",
		Nutrition:   "Balanced diet with adequate carbohydrates for energy",
		Exercise:    "Mix of HIIT, cardio, and functional training 4-5 times per week",
		Tips:        "Gradually increase intensity and duration of workouts",
	},
	{
		ID:          "custom-goal",
		Title:       "Custom Goal",
		Description: "Create your own personalized fitness goal",
		Nutrition:   "Tailored to your specific needs",
		Exercise:    "Customized workout plan based on your goals",
		Tips:        "Work with a fitness professional to create a personalized plan",
	},
}

func FindGoalTemplate(id string) (GoalTemplate, bool) {
	for _, t := range GoalTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return GoalTemplate{}, false
}
