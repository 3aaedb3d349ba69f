package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Saucepai/BotinBlackDashboard/internal/audit"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return password, nil
}

type itemCountView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type inventoryView struct {
	Cash        int64           `json:"cash"`
	Bank        int64           `json:"bank"`
	Stash       int64           `json:"stash"`
	Total       int64           `json:"total"`
	Coupons     int64           `json:"coupons"`
	Horses      []itemCountView `json:"horses"`
	Treasure    []itemCountView `json:"treasure"`
	Guns        []itemCountView `json:"guns"`
	Consumables []itemCountView `json:"consumables"`
	Properties  string          `json:"properties"`
	Licenses    string          `json:"licenses"`
	Other       string          `json:"other"`
}

func renderInventory(raw map[string]any) error {
	v, err := decodeInto[inventoryView](raw["inventory"])
	if err != nil {
		return err
	}
	accent.Println("Balances")
	neutral.Printf("  Cash $%d · Bank $%d · Stash $%d · Total $%d · Coupons %d\n",
		v.Cash, v.Bank, v.Stash, v.Total, v.Coupons)
	renderCounts("Horses", v.Horses)
	renderCounts("Guns", v.Guns)
	renderCounts("Consumables", v.Consumables)
	renderCounts("Treasure", v.Treasure)
	renderBlob("Properties", v.Properties)
	renderBlob("Licenses", v.Licenses)
	renderBlob("Other", v.Other)
	return nil
}

func renderCounts(label string, counts []itemCountView) {
	accent.Println(label)
	if len(counts) == 0 {
		neutral.Println("  (none)")
		return
	}
	for _, c := range counts {
		line := "  " + c.Name
		if c.Count > 1 {
			line += lineSuffix(c.Count)
		}
		neutral.Println(line)
	}
}

func lineSuffix(count int) string {
	return fmt.Sprintf(" (%dx)", count)
}

func renderBlob(label, blob string) {
	accent.Println(label)
	if strings.TrimSpace(blob) == "" {
		neutral.Println("  (none)")
		return
	}
	for _, item := range strings.Split(blob, ",") {
		neutral.Println("  " + strings.TrimSpace(item))
	}
}

func renderUser(raw map[string]any) error {
	user, ok := raw["user"].(map[string]any)
	if !ok {
		return fmt.Errorf("unexpected response shape")
	}
	accent.Printf("%v (%v)\n", user["username"], user["userId"])
	neutral.Printf("  Cash %v · Bank %v · Stash %v · Fines %v · Warrant %v\n",
		user["cash"], user["bank"], user["stash"], user["fines"], user["warrant"])
	for _, col := range []string{
		"horses", "treasure", "food", "potion", "hunting", "consumable",
		"bow", "pistol", "revolver", "rifle", "repeater", "shotgun",
		"license", "other", "properties",
	} {
		if v, _ := user[col].(string); v != "" {
			neutral.Printf("  %s: %s\n", col, v)
		}
	}
	return nil
}

func renderBalance(raw map[string]any, field string) error {
	balance, ok := raw["newBalance"].(float64)
	if !ok {
		return fmt.Errorf("unexpected response shape")
	}
	success.Printf("%s is now $%d\n", field, int64(balance))
	return nil
}

func renderInventoryUpdate(raw map[string]any) error {
	column, _ := raw["column"].(string)
	value, _ := raw["value"].(string)
	success.Printf("%s updated\n", column)
	renderBlob(column, value)
	return nil
}

func renderSimpleOK(raw map[string]any, fallback string) error {
	if msg, ok := raw["message"].(string); ok && msg != "" {
		printSuccess(msg)
		return nil
	}
	printSuccess(fallback)
	return nil
}

// renderAuditLog walks the JSONL transaction log and prints one colored
// line per entry. Unparseable lines are shown raw rather than dropped.
func renderAuditLog(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e audit.Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			danger.Println(line)
			continue
		}
		who := e.Username
		if who == "" {
			who = e.UserID
		}
		balances := ""
		if e.BalanceBefore != nil && e.BalanceAfter != nil {
			balances = fmt.Sprintf("  $%d → $%d", *e.BalanceBefore, *e.BalanceAfter)
		}
		accent.Printf("%s  ", e.Timestamp.Format("2006-01-02 15:04:05"))
		neutral.Printf("%-24s %-20s $%-8d %s%s\n", e.Command, who, e.Amount, e.Source, balances)
	}
	return scanner.Err()
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
