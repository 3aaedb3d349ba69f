package dashboard

import "github.com/Saucepai/BotinBlackDashboard/internal/economy"

type itemCountPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func countsPayload(counts []economy.ItemCount) []itemCountPayload {
	out := make([]itemCountPayload, 0, len(counts))
	for _, c := range counts {
		out = append(out, itemCountPayload{Name: c.Name, Count: c.Count})
	}
	return out
}

func inventoryPayload(v economy.InventoryView) map[string]any {
	return map[string]any{
		"cash":        v.Cash,
		"bank":        v.Bank,
		"stash":       v.Stash,
		"total":       v.Total,
		"coupons":     v.Coupons,
		"horses":      countsPayload(v.Horses),
		"treasure":    countsPayload(v.Treasure),
		"guns":        countsPayload(v.Guns),
		"consumables": countsPayload(v.Consumables),
		"properties":  v.Properties,
		"licenses":    v.Licenses,
		"other":       v.Other,
	}
}

func accountPayload(a *economy.Account) map[string]any {
	return map[string]any{
		"userId":     a.UserID,
		"username":   a.Username,
		"cash":       a.Cash,
		"bank":       a.Bank,
		"stash":      a.Stash,
		"fines":      a.Fines,
		"coupons":    a.Coupons,
		"warrant":    a.Warrant,
		"horses":     a.Horses,
		"treasure":   a.Treasure,
		"food":       a.Food,
		"potion":     a.Potion,
		"hunting":    a.Hunting,
		"consumable": a.Consumable,
		"bow":        a.Bow,
		"pistol":     a.Pistol,
		"revolver":   a.Revolver,
		"rifle":      a.Rifle,
		"repeater":   a.Repeater,
		"shotgun":    a.Shotgun,
		"license":    a.License,
		"other":      a.Other,
		"properties": a.Properties,
	}
}
