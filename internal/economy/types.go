package economy

import "time"

// Account is one player's row in the users table. Column names are the
// datastore's quoted identifiers and are fixed; see schema.sql.
type Account struct {
	UserID   string
	Username string

	Cash    int64
	Bank    int64
	Stash   int64
	Fines   int64
	Coupons int64

	Warrant bool
	Rate    int64
	Tax     time.Time

	Horses     string
	Treasure   string
	Food       string
	Potion     string
	Hunting    string
	Consumable string
	Bow        string
	Pistol     string
	Revolver   string
	Rifle      string
	Repeater   string
	Shotgun    string
	License    string
	Other      string

	Properties string

	Outlaw         bool
	Ranch          bool
	SmallBusiness  bool
	BigBusiness    bool
	Utility        bool
	Homestead      bool
	HomesteadCount int64
}

// InventoryColumn returns the raw blob of one inventory column.
func (a *Account) InventoryColumn(column string) string {
	switch column {
	case "Horses":
		return a.Horses
	case "Treasure":
		return a.Treasure
	case "Food":
		return a.Food
	case "Potion":
		return a.Potion
	case "Hunting":
		return a.Hunting
	case "Consumable":
		return a.Consumable
	case "Bow":
		return a.Bow
	case "Pistol":
		return a.Pistol
	case "Revolver":
		return a.Revolver
	case "Rifle":
		return a.Rifle
	case "Repeater":
		return a.Repeater
	case "Shotgun":
		return a.Shotgun
	case "License":
		return a.License
	case "Other":
		return a.Other
	}
	return ""
}

// Property is one row of the property marketplace. UserID and Owner are
// empty while the property is unowned.
type Property struct {
	Key      string
	Name     string
	Price    int64
	Details  string
	Type     string
	Location string
	UserID   string
	Owner    string
}

// Owned reports whether the property currently has an owner.
func (p *Property) Owned() bool {
	return p.UserID != ""
}

// StoreItem is a read-only catalog row, shared by the general store and
// Madam Nazar's rotating stock.
type StoreItem struct {
	Name    string
	Price   int64
	Type    string
	Details string
}

// BalanceChange reports one applied balance delta.
type BalanceChange struct {
	Field  string
	Before int64
	After  int64
}

// SpendResult reports a combined cash+bank debit.
type SpendResult struct {
	CashBefore int64
	BankBefore int64
	CashAfter  int64
	BankAfter  int64
}

func (s SpendResult) TotalBefore() int64 { return s.CashBefore + s.BankBefore }
func (s SpendResult) TotalAfter() int64  { return s.CashAfter + s.BankAfter }

// FineResult reports an applied fine increase.
type FineResult struct {
	FinesBefore   int64
	FinesAfter    int64
	WarrantIssued bool
}

// FineRemoval reports an applied fine decrease.
type FineRemoval struct {
	FinesBefore    int64
	FinesAfter     int64
	WarrantCleared bool
}

// WarrantNotice carries the public broadcast payload when a warrant is
// issued.
type WarrantNotice struct {
	UserID     string
	Username   string
	TotalFines int64
}

// InventoryView is the player-facing rollup of an account: balances plus
// per-section item counts.
type InventoryView struct {
	Cash        int64
	Bank        int64
	Stash       int64
	Total       int64
	Coupons     int64
	Horses      []ItemCount
	Treasure    []ItemCount
	Guns        []ItemCount
	Consumables []ItemCount
	Properties  string
	Licenses    string
	Other       string
}

// BuildInventoryView folds an account's raw columns into display counts.
// Food, Potion, Hunting and Consumable merge into one consumables
// section; the six weapon columns merge into guns.
func BuildInventoryView(a *Account) InventoryView {
	var consumables []string
	for _, raw := range []string{a.Food, a.Potion, a.Hunting, a.Consumable} {
		consumables = append(consumables, ParseList(raw)...)
	}
	var guns []string
	for _, raw := range []string{a.Bow, a.Pistol, a.Revolver, a.Rifle, a.Repeater, a.Shotgun} {
		guns = append(guns, ParseList(raw)...)
	}
	return InventoryView{
		Cash:        a.Cash,
		Bank:        a.Bank,
		Stash:       a.Stash,
		Total:       a.Cash + a.Bank + a.Stash,
		Coupons:     a.Coupons,
		Horses:      CountList(ParseList(a.Horses)),
		Treasure:    CountList(ParseList(a.Treasure)),
		Guns:        CountList(guns),
		Consumables: CountList(consumables),
		Properties:  CapitalizeWords(a.Properties),
		Licenses:    CapitalizeWords(a.License),
		Other:       CapitalizeWords(a.Other),
	}
}

// Actor identifies who triggered a mutation, for the audit trail.
type Actor struct {
	ID       string
	Username string
	Source   string
	GuildID  string
}
