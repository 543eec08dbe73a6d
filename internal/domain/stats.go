package domain

// StudyStats is a per-user snapshot shown in the bot's stats view.
type StudyStats struct {
	TotalWords    int
	TotalCards    int
	DueNow        int
	CreatedToday  int
	ReviewedToday int
}
