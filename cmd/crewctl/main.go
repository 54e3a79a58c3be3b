package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crewapp/crew-scheduler/internal/client"
	"github.com/crewapp/crew-scheduler/internal/dateutil"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
)

var (
	configPath string
	logger     *zap.Logger
)

// CLIConfig is what crewctl reads from its YAML config file.
type CLIConfig struct {
	ServerURL string `mapstructure:"server_url"`
	Token     string `mapstructure:"token"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewctl",
		Short: "Crew scheduler command line client",
		Long:  "Manage day offs, Pix keys and your profile on a crew scheduler server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default $HOME/.crewctl/config.yaml)")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(dayoffCmd())
	rootCmd.AddCommand(pixCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the CLI config file. The viper instance is returned so
// login can write the token back to the same file.
func loadConfig() (*CLIConfig, *viper.Viper, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.crewctl")
		v.AddConfigPath(".")
	}

	v.SetDefault("server_url", "http://localhost:8080")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env still work.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, v, nil
}

func newAPIClient() (*client.Client, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("not logged in, run: crewctl login")
	}
	return client.NewClient(cfg.ServerURL, cfg.Token, logger), nil
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, v, err := loadConfig()
			if err != nil {
				return err
			}

			c := client.NewClient(cfg.ServerURL, "", logger)
			user, err := c.Login(email, password)
			if err != nil {
				return err
			}

			v.Set("token", c.Token())
			target := v.ConfigFileUsed()
			if target == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to resolve home dir: %w", err)
				}
				dir := home + "/.crewctl"
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return fmt.Errorf("failed to create config dir: %w", err)
				}
				target = dir + "/config.yaml"
			}
			if err := v.WriteConfigAs(target); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func calendarCmd() *cobra.Command {
	now := time.Now()
	var year, month int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with day offs marked",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			view := client.NewMonthView(c, year, time.Month(month))
			if err := view.Load(); err != nil {
				return err
			}

			fmt.Print(view.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", now.Year(), "Year to display")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month to display (1-12)")

	return cmd
}

func dayoffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dayoff",
		Short: "Manage day offs",
	}

	cmd.AddCommand(dayoffListCmd())
	cmd.AddCommand(dayoffAddCmd())
	cmd.AddCommand(dayoffEditCmd())
	cmd.AddCommand(dayoffRmCmd())

	return cmd
}

func dayoffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every day off",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			items, err := c.DayOffs()
			if err != nil {
				return err
			}

			for _, item := range items {
				repeat := ""
				if item.Repeat {
					repeat = fmt.Sprintf("  [%s x%s]", item.RepeatType, item.RepeatValue)
				}
				fmt.Printf("%4d  %s %s - %s %s%s\n",
					item.ID,
					dateutil.FormatDisplayDate(item.InitHour),
					dateutil.DisplayTime(item.InitHour),
					dateutil.FormatDisplayDate(item.EndHour),
					dateutil.DisplayTime(item.EndHour),
					repeat)
			}
			return nil
		},
	}
}

func parsePayload(initDate, initTime, endDate, endTime string, repeat bool, repeatType, repeatValue string) (client.DayOffPayload, error) {
	// Run flags through the same input masks the form fields use, so raw
	// digit entry like 15032024 or 0800 is accepted.
	initDate = dateutil.MaskDate(initDate)
	endDate = dateutil.MaskDate(endDate)
	initTime = dateutil.MaskTime(initTime)
	endTime = dateutil.MaskTime(endTime)

	init, err := dateutil.CombineLocal(dateutil.ParseDisplayDate(initDate), initTime)
	if err != nil {
		return client.DayOffPayload{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := dateutil.CombineLocal(dateutil.ParseDisplayDate(endDate), endTime)
	if err != nil {
		return client.DayOffPayload{}, fmt.Errorf("invalid end: %w", err)
	}

	p := client.DayOffPayload{InitHour: init, EndHour: end, Repeat: repeat}
	if repeat {
		p.RepeatType = repeatType
		p.RepeatValue = repeatValue
	}
	return p, nil
}

func dayoffAddCmd() *cobra.Command {
	var initDate, initTime, endDate, endTime string
	var repeat bool
	var repeatType, repeatValue string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a day off (dates DD/MM/YYYY, times HH:MM)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			if endDate == "" {
				endDate = initDate
			}

			p, err := parsePayload(initDate, initTime, endDate, endTime, repeat, repeatType, repeatValue)
			if err != nil {
				return err
			}

			created, err := c.CreateDayOff(p)
			if err != nil {
				return err
			}

			fmt.Printf("Created day off %d\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&initDate, "init-date", "", "Start date DD/MM/YYYY")
	cmd.Flags().StringVar(&initTime, "init-time", "08:00", "Start time HH:MM")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date DD/MM/YYYY (defaults to start date)")
	cmd.Flags().StringVar(&endTime, "end-time", "18:00", "End time HH:MM")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "Repeat the entry")
	cmd.Flags().StringVar(&repeatType, "repeat-type", "weekly", "daily, weekly, monthly or yearly")
	cmd.Flags().StringVar(&repeatValue, "repeat-value", "4", "Number of occurrences (1-365)")
	cmd.MarkFlagRequired("init-date")

	return cmd
}

func dayoffEditCmd() *cobra.Command {
	var initDate, initTime, endDate, endTime, mode string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a day off's interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			scope, err := domain.ParseScope(mode)
			if err != nil {
				return fmt.Errorf("invalid --mode: %s", mode)
			}

			if endDate == "" {
				endDate = initDate
			}

			p, err := parsePayload(initDate, initTime, endDate, endTime, false, "", "")
			if err != nil {
				return err
			}

			updated, err := c.UpdateDayOff(id, scope, p)
			if err != nil {
				return err
			}

			fmt.Printf("Updated day off %d (%s)\n", updated.ID, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&initDate, "init-date", "", "Start date DD/MM/YYYY")
	cmd.Flags().StringVar(&initTime, "init-time", "08:00", "Start time HH:MM")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date DD/MM/YYYY (defaults to start date)")
	cmd.Flags().StringVar(&endTime, "end-time", "18:00", "End time HH:MM")
	cmd.Flags().StringVar(&mode, "mode", "single", "single, future or all")
	cmd.MarkFlagRequired("init-date")

	return cmd
}

func dayoffRmCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			scope, err := domain.ParseScope(mode)
			if err != nil {
				return fmt.Errorf("invalid --mode: %s", mode)
			}

			if err := c.DeleteDayOff(id, scope); err != nil {
				return err
			}

			fmt.Printf("Removed day off %d (%s)\n", id, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "single", "single, future or all")

	return cmd
}

func pixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pix",
		Short: "Manage Pix keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered Pix keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			keys, err := c.PixKeys()
			if err != nil {
				return err
			}

			for _, key := range keys {
				fmt.Printf("%4d  %-8s %s\n", key.ID, key.KeyType, key.Key)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <key>",
		Short: "Register a Pix key (type is detected server-side)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			created, err := c.AddPixKey(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Added %s key %d\n", created.KeyType, created.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a Pix key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			if err := c.DeletePixKey(id); err != nil {
				return err
			}

			fmt.Printf("Removed Pix key %d\n", id)
			return nil
		},
	})

	return cmd
}

func parseIDArg(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return id, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}
