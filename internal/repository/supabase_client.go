package repository

import (
	"fmt"

	"pdf-fusion/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient lazily connects to the Supabase project that mirrors merge
// records and stores merged outputs.
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Enabled reports whether Supabase credentials are configured
func (s *SupabaseClient) Enabled() bool {
	return s.config.GetSupabaseURL() != "" && s.config.GetSupabaseKey() != ""
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	if !s.Enabled() {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(s.config.GetSupabaseURL(), s.config.GetSupabaseKey(), &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", s.config.GetSupabaseURL())
	return nil
}

// DB returns the typed client, or nil before Initialize succeeds
func (s *SupabaseClient) DB() *supabase.Client {
	return s.client
}
