// Package main provides the CLI entrypoint for fieldmask.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/fieldmask/internal/config"
	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/generator"
	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/model"
	"github.com/verte-zerg/fieldmask/internal/tui"
)

const (
	defaultOutput  = config.FormatTOML
	defaultSamples = 5
)

var (
	formLocale    string
	formOverwrite bool
	formPrompt    string
	formOutput    string
	formOut       string

	validateType   string
	validateLocale string
	validateStrict bool

	formatType   string
	formatMask   string
	formatLocale string

	sampleType   string
	sampleCount  int
	sampleLocale string
	sampleSeed   int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldmask [form]",
		Short:         "Masked form fields in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runFormCmd,
	}

	rootCmd.Flags().StringVar(&formLocale, "locale", "", "locale for separators and dates (default: form or pt-BR)")
	rootCmd.Flags().BoolVar(&formOverwrite, "overwrite", false, "start fields in overwrite mode")
	rootCmd.Flags().StringVar(&formPrompt, "prompt", "", "prompt character for unset mask slots")
	rootCmd.Flags().StringVar(&formOutput, "output", defaultOutput, "result format (toml or yaml)")
	rootCmd.Flags().StringVar(&formOut, "out", "", "write the result to a file instead of stdout")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLocalesCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}

func runFormCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "locale", &formLocale, fileCfg.Field.Locale)
	applyBoolConfig(cmd, "overwrite", &formOverwrite, fileCfg.Field.Overwrite)
	applyStringConfig(cmd, "prompt", &formPrompt, fileCfg.Field.Prompt)
	applyStringConfig(cmd, "output", &formOutput, fileCfg.Output.Format)

	format, err := config.ParseFormat(formOutput)
	if err != nil {
		return err
	}
	if err := validatePrompt(formPrompt); err != nil {
		return err
	}

	path, err := config.ResolveFormPath(args[0], config.DefaultFormDir())
	if err != nil {
		return err
	}
	form, err := config.LoadForm(path)
	if err != nil {
		return err
	}
	settings := model.Settings{
		Locale:    resolveLocale(formLocale, form.Locale),
		Overwrite: formOverwrite,
		Prompt:    formPrompt,
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	m, err := tui.NewModel(form, settings)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	for _, press := range m.Presses() {
		logErrf("button pressed on %s with %q\n", press.Field, press.Value)
	}
	result, ok := m.Result()
	if !ok {
		return fmt.Errorf("form cancelled")
	}

	var buf bytes.Buffer
	if err := config.EncodeResult(&buf, result, format); err != nil {
		return err
	}
	if formOut != "" {
		if err := writeResultFile(formOut, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", formOut, err)
		}
		logErrf("Wrote %s\n", formOut)
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List built-in locales",
		Args:  cobra.NoArgs,
		RunE:  runLocalesCmd,
	}
}

func runLocalesCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range locale.Supported() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List field types and their masks",
		Args:  cobra.NoArgs,
		RunE:  runTypesCmd,
	}
}

func runTypesCmd(cmd *cobra.Command, _ []string) error {
	for _, line := range typesTable() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func typesTable() []string {
	headers := []string{"Type", "Mask", "Max", "Hidden"}
	rows := make([][]string, 0, len(field.FieldTypes()))
	for _, t := range field.FieldTypes() {
		p := field.PresetFor(t)
		maskCell := "-"
		if p.HasMask() {
			maskCell = p.Mask
			if p.PasswordChar != 0 {
				maskCell = fmt.Sprintf("& x%d", p.MaxLength)
			}
		}
		maxCell := "-"
		if n := presetLength(t); n > 0 {
			maxCell = strconv.Itoa(n)
		}
		hidden := ""
		if p.PasswordChar != 0 {
			hidden = string(p.PasswordChar)
		}
		rows = append(rows, []string{t.String(), maskCell, maxCell, hidden})
	}
	return formatTable(headers, rows, map[int]bool{2: true})
}

func presetLength(t field.FieldType) int {
	cfg := field.DefaultConfig()
	cfg.Type = t
	f, err := field.New(cfg)
	if err != nil {
		return 0
	}
	return f.MaxLength()
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [values...]",
		Short: "Validate values as a field type",
		Long:  "Validate values as a field type. Values are read from stdin, one per line, when none are given and stdin is not a terminal.",
		RunE:  runValidateCmd,
	}
	cmd.Flags().StringVar(&validateType, "type", "", "field type (see: fieldmask types)")
	cmd.Flags().StringVar(&validateLocale, "locale", "", "locale for separators and dates")
	cmd.Flags().BoolVar(&validateStrict, "strict", false, "reject empty and partially filled values")
	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	t, err := field.ParseFieldType(validateType)
	if err != nil {
		return err
	}
	values := args
	if len(values) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no values given")
		}
		values, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	cfg := field.DefaultConfig()
	cfg.Type = t
	cfg.Locale = locale.Lookup(resolveLocale(validateLocale, ""))
	if validateStrict {
		cfg.AllowEmpty = false
		cfg.AllowShorter = false
	}

	invalid := 0
	for _, value := range values {
		text, ok := checkValue(cfg, value)
		status := "ok"
		if !ok {
			status = "invalid"
			invalid++
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", status, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d value(s) invalid", invalid, len(values))
	}
	return nil
}

// checkValue runs value through a field of the configured type the way a
// focus change would and returns the normalised text.
func checkValue(cfg field.Config, value string) (string, bool) {
	f, err := field.New(cfg)
	if err != nil {
		return value, false
	}
	f.Focus()
	if n := f.MaxLength(); !f.Masked() && n > 0 && utf8.RuneCountInString(value) > n {
		return value, false
	}
	if !f.SetText(value) {
		return value, false
	}
	res := f.OnFocusLost()
	return res.Text, res.Valid
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format value",
		Short: "Format raw input through a mask",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormatCmd,
	}
	cmd.Flags().StringVar(&formatType, "type", "", "field type with a preset mask")
	cmd.Flags().StringVar(&formatMask, "mask", "", "custom mask pattern")
	cmd.Flags().StringVar(&formatLocale, "locale", "", "locale for separators and dates")
	return cmd
}

func runFormatCmd(cmd *cobra.Command, args []string) error {
	out, err := formatValue(formatType, formatMask, resolveLocale(formatLocale, ""), args[0])
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func formatValue(typeName, pattern, localeName, value string) (string, error) {
	if (typeName == "") == (pattern == "") {
		return "", fmt.Errorf("exactly one of --type or --mask is required")
	}
	cfg := field.DefaultConfig()
	cfg.Locale = locale.Lookup(localeName)
	if typeName != "" {
		t, err := field.ParseFieldType(typeName)
		if err != nil {
			return "", err
		}
		if !field.PresetFor(t).HasMask() {
			return "", fmt.Errorf("field type %s has no mask", t)
		}
		cfg.Type = t
	} else {
		cfg.Mask = pattern
	}
	f, err := field.New(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to compile mask: %w", err)
	}
	if !f.SetText(value) {
		return "", fmt.Errorf("value %q does not fit the mask", value)
	}
	return f.RealValue(), nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate valid values for a field type",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().StringVar(&sampleType, "type", "", "field type (see: fieldmask types)")
	cmd.Flags().IntVarP(&sampleCount, "count", "n", defaultSamples, "number of values")
	cmd.Flags().StringVar(&sampleLocale, "locale", "", "locale for separators and dates")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (default: time based)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	t, err := field.ParseFieldType(sampleType)
	if err != nil {
		return err
	}
	if sampleCount <= 0 {
		return fmt.Errorf("--count must be greater than 0")
	}
	loc := locale.Lookup(resolveLocale(sampleLocale, ""))
	gen := generator.New(loc)
	if cmd.Flags().Changed("seed") {
		gen = generator.NewSeeded(sampleSeed, loc)
	}
	values, err := gen.Generate(t, sampleCount)
	if err != nil {
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveLocale picks the first non-empty name, falling back to the config
// file and then the default locale.
func resolveLocale(names ...string) string {
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		logErrf("failed to load config: %v\n", err)
		return locale.Default.String()
	}
	if fileCfg.Field.Locale != nil && *fileCfg.Field.Locale != "" {
		return *fileCfg.Field.Locale
	}
	return locale.Default.String()
}

func validatePrompt(prompt string) error {
	if prompt == "" {
		return nil
	}
	if n := len([]rune(prompt)); n != 1 {
		return fmt.Errorf("--prompt must be a single character, got %d", n)
	}
	return nil
}

func writeResultFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create result dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "result-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp result: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush result: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close result: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fieldmask configuration
# Uncomment a value to enable it. CLI flags override config values.

[field]
# locale = %q          # Separators and date order (%s)
# overwrite = false       # Start fields in overwrite mode
# prompt = "_"            # Prompt character for unset mask slots

[output]
# format = %q           # Result format: toml or yaml
`,
		locale.Default.String(),
		strings.Join(locale.Supported(), ", "),
		defaultOutput,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
