package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	cl "github.com/Saucepai/BotinBlackDashboard/internal/cli"
	"github.com/Saucepai/BotinBlackDashboard/internal/config"
)

func main() {
	cfg := config.LoadCLI()
	baseURL := cfg.DashboardURL

	root := &cobra.Command{
		Use:          "frontier",
		Short:        "Frontier economy operator tool",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "dashboard base URL")

	root.AddCommand(
		newLoginCmd(&baseURL),
		newLogoutCmd(&baseURL),
		newInventoryCmd(&baseURL),
		newUserCmd(&baseURL),
		newBalanceCmd(&baseURL),
		newPropertyCmd(&baseURL),
		newItemsCmd(&baseURL),
		newHashCmd(),
		newAuditCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(baseURL *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*baseURL), "/"))
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func loadToken() (string, error) {
	session, err := cl.LoadSession()
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func newLoginCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Dashboard password")
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			token, err := newClient(baseURL).Login(ctx, password)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{Token: token, DashboardURL: *baseURL}); err != nil {
				return err
			}
			printSuccess("Logged in. Session saved.")
			return nil
		},
	}
}

func newLogoutCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err == nil {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				if err := newClient(baseURL).Logout(ctx, token); err != nil {
					printWarn("Server logout failed: " + err.Error())
				}
			}
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared.")
			return nil
		},
	}
}

func newInventoryCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <user-id>",
		Short: "Show a user's inventory rollup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			raw, err := newClient(baseURL).Inventory(ctx, token, args[0])
			if err != nil {
				return err
			}
			return renderInventory(raw)
		},
	}
}

func newUserCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "user <user-id>",
		Short: "Show a user's raw ledger row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			raw, err := newClient(baseURL).SearchUser(ctx, token, args[0])
			if err != nil {
				return err
			}
			return renderUser(raw)
		},
	}
}

func newBalanceCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user-id> <Cash|Bank|Stash> <delta>",
		Short: "Adjust a balance (negative delta debits)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("delta must be an integer: %w", err)
			}
			token, err := loadToken()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			raw, err := newClient(baseURL).UpdateBalance(ctx, token, args[0], args[1], amount)
			if err != nil {
				return err
			}
			return renderBalance(raw, args[1])
		},
	}
}

func newPropertyCmd(baseURL *string) *cobra.Command {
	property := &cobra.Command{
		Use:   "property",
		Short: "Property management",
	}
	property.AddCommand(
		&cobra.Command{
			Use:   "give <user-id> <property-name>",
			Short: "Assign a property without payment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := loadToken()
				if err != nil {
					return err
				}
				ctx, cancel := requestContext(cmd)
				defer cancel()
				raw, err := newClient(baseURL).GiveProperty(ctx, token, args[0], args[1], "Admin")
				if err != nil {
					return err
				}
				return renderSimpleOK(raw, "Property assigned.")
			},
		},
		&cobra.Command{
			Use:   "remove <user-id> <property-name>",
			Short: "Take a property back from its holder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := loadToken()
				if err != nil {
					return err
				}
				ctx, cancel := requestContext(cmd)
				defer cancel()
				raw, err := newClient(baseURL).RemoveProperty(ctx, token, args[0], args[1])
				if err != nil {
					return err
				}
				return renderSimpleOK(raw, "Property removed.")
			},
		},
		&cobra.Command{
			Use:   "delete <property-name>",
			Short: "Delete an unowned property listing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := loadToken()
				if err != nil {
					return err
				}
				ctx, cancel := requestContext(cmd)
				defer cancel()
				raw, err := newClient(baseURL).DeleteProperty(ctx, token, args[0])
				if err != nil {
					return err
				}
				return renderSimpleOK(raw, "Property deleted.")
			},
		},
	)
	return property
}

func newItemsCmd(baseURL *string) *cobra.Command {
	var qty int
	items := &cobra.Command{
		Use:   "items <user-id> <column> <item> <add|remove>",
		Short: "Add or remove inventory items",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			raw, err := newClient(baseURL).UpdateInventory(ctx, token, args[0], args[1], args[2], args[3], qty)
			if err != nil {
				return err
			}
			return renderInventoryUpdate(raw)
		},
	}
	items.Flags().IntVar(&qty, "quantity", 1, "how many to add or remove")
	return items
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Mint a bcrypt hash for DASHBOARD_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password to hash")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func newAuditCmd() *cobra.Command {
	path := "logs/admin.log"
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Pretty-print the transaction log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderAuditLog(path)
		},
	}
	audit.Flags().StringVar(&path, "file", path, "path to the transaction log")
	return audit
}
