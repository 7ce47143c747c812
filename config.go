package mealplanner

// PlannerConfig locates the documents a run reads and tunes the run itself.
type PlannerConfig struct {
	ArtifactsCatalogPath   string  `env:"ARTIFACTS_CATALOG_PATH,default=artifacts/recipes.json"`
	ArtifactsProfilePath   string  `env:"ARTIFACTS_PROFILE_PATH,default=artifacts/profile.json"`
	ArtifactsPricesPath    string  `env:"ARTIFACTS_PRICES_PATH,default=artifacts/prices.json"`
	ArtifactsNutrientsPath string  `env:"ARTIFACTS_NUTRIENTS_PATH"`
	SelectionStrategy      string  `env:"SELECTION_STRATEGY,default=static"`
	WeeklyBudget           float64 `env:"WEEKLY_BUDGET,default=500"`
	Currency               string  `env:"BUDGET_CURRENCY,default=INR"`
	HistoryDBPath          string  `env:"HISTORY_DB_PATH"`
	RunLogDir              string  `env:"RUN_LOG_DIR,default=logs"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL,default=#meal-plans"`
}

// S3Config locates the run documents in S3 for the Lambda entrypoint.
type S3Config struct {
	Bucket       string `env:"ARTIFACTS_S3_BUCKET,required"`
	CatalogKey   string `env:"ARTIFACTS_CATALOG_S3_KEY,required"`
	ProfileKey   string `env:"ARTIFACTS_PROFILE_S3_KEY,required"`
	PricesKey    string `env:"ARTIFACTS_PRICES_S3_KEY"`
	NutrientsKey string `env:"ARTIFACTS_NUTRIENTS_S3_KEY"`
}
