package cli

import "context"

func (a *App) viewHome(_ context.Context, _ Navigation, _ []string) error {
	a.println("NutriCare: skin photo analysis and diet recommendations")
	a.println()
	if !a.isLoggedIn() {
		a.println("You are browsing as a guest. Type 'login' or 'signup' to get started.")
	} else {
		a.println("Type 'upload <file>' to analyze a photo or 'photos' to see your history.")
	}
	a.println("Type 'help' for all commands.")
	return nil
}

func (a *App) viewEngineering(_ context.Context, _ Navigation, _ []string) error {
	a.println(`How it works

1. Upload a face photo. An image classifier labels the skin condition.
2. The diagnosis is combined with your health profile (height, weight,
   activity level and goal) to estimate a calorie target.
3. A language model proposes menus that fit the target and avoid foods
   known to aggravate the condition.`)
	return nil
}

// diseaseInfo lists the conditions the classifier reports.
var diseaseInfo = []struct {
	Code, Name, Avoid, Prefer string
}{
	{
		Code:   "ACNE",
		Name:   "Acne",
		Avoid:  "high glycemic foods, excess dairy, fried food and saturated fat",
		Prefer: "omega-3 rich fish, vegetables, low sugar whole grains, plenty of water",
	},
	{
		Code:   "ATOPIC",
		Name:   "Atopic dermatitis",
		Avoid:  "processed and instant food, excess sugar and salt",
		Prefer: "anti-inflammatory food (salmon, avocado, nuts), vegetables, water",
	},
}

func (a *App) viewDiseaseInfo(_ context.Context, _ Navigation, _ []string) error {
	for _, d := range diseaseInfo {
		a.printf("%s (%s)\n  avoid:  %s\n  prefer: %s\n\n", d.Name, d.Code, d.Avoid, d.Prefer)
	}
	return nil
}
