package domain

var MealCategories = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

type Meal struct {
	ID       string  `json:"id"`
	UserID   int64   `json:"user_id"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Time     *string `json:"time"`
}

type MealFilter struct {
	Category string
	Search   string
	Date     string
}

type NutritionSummary struct {
	Date          string  `json:"date,omitempty"`
	MealCount     int     `json:"meal_count"`
	TotalCalories int     `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}
