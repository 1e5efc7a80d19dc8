package session

// The predefined workout templates shipped with the application. Their IDs
// are stable and recorded verbatim in workout logs.
var PredefinedWorkouts = []Predefined{
	{
		ID:            "full-body-1",
		Name:          "Full Body Workout",
		Duration:      "60 minutes",
		ExerciseCount: 8,
		Exercises: []SourceExercise{
			{Name: "Barbell Squat"},
			{Name: "Barbell Bench Press"},
			{Name: "Barbell Row"},
			{Name: "Deadlift"},
			{Name: "Shoulder Press"},
			{Name: "Pull-ups"},
			{Name: "Dips"},
			{Name: "Plank"},
		},
	},
	{
		ID:            "upper-body-1",
		Name:          "Upper Body Workout",
		Duration:      "45 minutes",
		ExerciseCount: 6,
		Exercises: []SourceExercise{
			{Name: "Bench Press"},
			{Name: "Bent Over Rows"},
			{Name: "Overhead Press"},
			{Name: "Lat Pulldown"},
			{Name: "Tricep Extension"},
			{Name: "Bicep Curls"},
		},
	},
	{
		ID:            "lower-body-1",
		Name:          "Lower Body Workout",
		Duration:      "45 minutes",
		ExerciseCount: 6,
		Exercises: []SourceExercise{
			{Name: "Squats"},
			{Name: "Romanian Deadlifts"},
			{Name: "Leg Press"},
			{Name: "Leg Extensions"},
			{Name: "Leg Curls"},
			{Name: "Calf Raises"},
		},
	},
}

// LookupPredefined returns the predefined template with the given ID.
func LookupPredefined(id string) (Predefined, bool) {
	for _, p := range PredefinedWorkouts {
		if p.ID == id {
			return p, true
		}
	}
	return Predefined{}, false
}
