package config

// EmbeddingConfig represents the configuration for the embedding provider
type EmbeddingConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for OpenAI embeddings
type OpenAIConfig struct {
	APIKey    string
	ModelName string
}

// GeminiConfig represents the configuration for Google Gemini embeddings
type GeminiConfig struct {
	APIKey    string
	ModelName string
}

// BedrockConfig represents the configuration for Amazon Bedrock embeddings
type BedrockConfig struct {
	Region  string
	ModelID string
}

// AnalysisConfig represents the tunables of the analysis core
type AnalysisConfig struct {
	SimilarityThreshold float64
	MaxBodySize         int
	MaxWorkers          int
	MutedDomains        []string
}

// ModelConfig locates the trained classifier artifacts
type ModelConfig struct {
	Dir            string
	ClassifierFile string
	VocabularyFile string
}

// ResolverConfig represents the deadline resolver settings
type ResolverConfig struct {
	WorkdayStartHour int
	WorkdayEndHour   int
	Timezone         string
}

// TrainingConfig represents the offline training settings
type TrainingConfig struct {
	DatasetSize    int
	VocabularySize int
	MaxDepth       int
	Seed           int64
}

// GetEmbedding returns the embedding provider configuration
func (c *Config) GetEmbedding() EmbeddingConfig {
	return EmbeddingConfig{
		Provider: c.GetString("embedding.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:    c.GetString("openai.api_key"),
		ModelName: c.GetString("openai.model_name"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:    c.GetString("gemini.api_key"),
		ModelName: c.GetString("gemini.model_name"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:  c.GetString("bedrock.region"),
		ModelID: c.GetString("bedrock.model_id"),
	}
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		SimilarityThreshold: c.GetFloat64("analysis.similarity_threshold"),
		MaxBodySize:         c.GetInt("analysis.max_body_size"),
		MaxWorkers:          c.GetInt("analysis.max_workers"),
		MutedDomains:        c.GetStringSlice("analysis.muted_domains"),
	}
}

// GetModel returns the model artifact configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Dir:            c.GetString("model.dir"),
		ClassifierFile: c.GetString("model.classifier_file"),
		VocabularyFile: c.GetString("model.vocabulary_file"),
	}
}

// GetResolver returns the deadline resolver configuration
func (c *Config) GetResolver() ResolverConfig {
	return ResolverConfig{
		WorkdayStartHour: c.GetInt("resolver.workday_start_hour"),
		WorkdayEndHour:   c.GetInt("resolver.workday_end_hour"),
		Timezone:         c.GetString("resolver.timezone"),
	}
}

// GetTraining returns the training configuration
func (c *Config) GetTraining() TrainingConfig {
	return TrainingConfig{
		DatasetSize:    c.GetInt("training.dataset_size"),
		VocabularySize: c.GetInt("training.vocabulary_size"),
		MaxDepth:       c.GetInt("training.max_depth"),
		Seed:           int64(c.GetInt("training.seed")),
	}
}
