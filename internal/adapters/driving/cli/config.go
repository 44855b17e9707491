package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// secretKeys are masked when printed.
var secretKeys = map[string]bool{
	"llm.api_key":  true,
	"github.token": true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change readme-maker settings.

Settings live in ~/.readme-maker/config.toml. ANTHROPIC_API_KEY,
OPENAI_API_KEY, GEMINI_API_KEY and GITHUB_TOKEN override the stored keys.`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. filter.ignore takes a comma-separated list.

Examples:
  readme-maker config set llm.provider anthropic
  readme-maker config set pipeline.max_files 50
  readme-maker config set filter.ignore "docs/**,*.generated.go"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configProviderCmd = &cobra.Command{
	Use:   "provider",
	Short: "Configure the LLM provider interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigProvider,
}

var configTierCmd = &cobra.Command{
	Use:   "tier <standard|premium>",
	Short: "Select the summarizer tier",
	Long: `Select the summarizer tier.

  standard - 3 retries, 1s between batches
  premium  - 5 retries, 300ms between batches`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigTier,
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Validate settings and ping the LLM provider",
	Args:  cobra.NoArgs,
	RunE:  runConfigTest,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configProviderCmd)
	configCmd.AddCommand(configTierCmd)
	configCmd.AddCommand(configTestCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		cmd.Printf("%s = %s\n", key, displayValue(key, value))
	}

	cmd.Println()
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'readme-maker config provider' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Println(displayValue(args[0], value))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetValue(key, value); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", key, displayValue(key, value))
	return nil
}

func runConfigTier(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	tier := domain.Tier(strings.ToLower(args[0]))
	if err := settingsService.SetTier(tier); err != nil {
		return err
	}
	cmd.Printf("Tier set to: %s (%d retries, %s between batches)\n",
		tier, tier.MaxRetries(), tier.InterRequestDelay())
	return nil
}

func runConfigTest(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if llmValidator == nil {
		cmd.Println("Configuration is valid.")
		return nil
	}

	cmd.Printf("Pinging %s (%s)... ", settings.LLM.Provider.Description(), settings.LLM.Model)
	if err := llmValidator.ValidateLLM(&settings.LLM); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}

func runConfigProvider(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty to use the environment): ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if llmValidator != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cmd.Print("Validating configuration... ")
		if err := llmValidator.ValidateLLM(&settings.LLM); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func displayValue(key, value string) string {
	if value == "" {
		return "(not set)"
	}
	if secretKeys[key] {
		return maskAPIKey(value)
	}
	return value
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
