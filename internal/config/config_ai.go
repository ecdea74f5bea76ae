package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
}

// GetTagConfig returns the AI configuration for entity tagging with fallback
// to global config
func (c *Config) GetTagConfig() OperationAIConfig {
	config := c.AI.Tag
	c.applyOperationDefaults(&config)
	return config
}

// GetEmbedConfig returns the AI configuration for embedding with fallback to
// global config
func (c *Config) GetEmbedConfig() OperationAIConfig {
	config := c.AI.Embed
	c.applyOperationDefaults(&config)
	return config
}
