package bot

import "github.com/bwmarrin/discordgo"

func commandDefinitions() []*discordgo.ApplicationCommand {
	balanceChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Cash", Value: "Cash"},
		{Name: "Bank", Value: "Bank"},
		{Name: "Stash", Value: "Stash"},
	}
	columnChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Horses", Value: "Horses"},
		{Name: "Treasure", Value: "Treasure"},
		{Name: "Food", Value: "Food"},
		{Name: "Potion", Value: "Potion"},
		{Name: "Hunting", Value: "Hunting"},
		{Name: "Consumable", Value: "Consumable"},
		{Name: "Bow", Value: "Bow"},
		{Name: "Pistol", Value: "Pistol"},
		{Name: "Revolver", Value: "Revolver"},
		{Name: "Rifle", Value: "Rifle"},
		{Name: "Repeater", Value: "Repeater"},
		{Name: "Shotgun", Value: "Shotgun"},
		{Name: "License", Value: "License"},
		{Name: "Other", Value: "Other"},
	}
	propertyTypeChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Outlaw", Value: "Outlaw"},
		{Name: "Ranch", Value: "Ranch"},
		{Name: "Small Business", Value: "SmallBusiness"},
		{Name: "Big Business", Value: "BigBusiness"},
		{Name: "Utility", Value: "Utility"},
		{Name: "Homestead", Value: "Homestead"},
	}

	userOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: desc,
			Required:    true,
		}
	}
	amountOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: desc,
			Required:    true,
			MinValue:    float64Ptr(1),
		}
	}
	propertyOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "property",
		Description: "Property name",
		Required:    true,
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "inventory",
			Description: "Show a satchel and bank ledger",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose inventory (admins only; defaults to you)",
				},
			},
		},
		{
			Name:        "item-search",
			Description: "Search the general store",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Item name to search for",
					Required:    true,
				},
			},
		},
		{Name: "property-store", Description: "Browse properties for sale"},
		{
			Name:        "property-search",
			Description: "Look up properties by name",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Property name to search for",
					Required:    true,
				},
			},
		},
		{Name: "nazar-store", Description: "Browse Madam Nazar's curiosities"},
		{Name: "nazar-location", Description: "Where is Madam Nazar today?"},
		{
			Name:        "admin-give-money",
			Description: "Credit a balance",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Who to credit"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Which balance",
					Required:    true,
					Choices:     balanceChoices,
				},
				amountOpt("Amount to add"),
			},
		},
		{
			Name:        "admin-remove-money",
			Description: "Debit a balance",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Who to debit"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Which balance",
					Required:    true,
					Choices:     balanceChoices,
				},
				amountOpt("Amount to remove"),
			},
		},
		{
			Name:        "admin-add-fines",
			Description: "Add to a user's outstanding fines",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Who to fine"),
				amountOpt("Fine amount"),
			},
		},
		{
			Name:        "admin-remove-fines",
			Description: "Pay down a user's fines",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Whose fines"),
				amountOpt("Amount to remove"),
			},
		},
		{
			Name:        "admin-remove-warrant",
			Description: "Clear an active warrant",
			Options:     []*discordgo.ApplicationCommandOption{userOpt("Whose warrant")},
		},
		{
			Name:        "admin-give-property",
			Description: "Assign a property without payment",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("New holder"),
				propertyOpt,
			},
		},
		{
			Name:        "admin-take-property",
			Description: "Take a property back from its holder",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Current holder"),
				propertyOpt,
			},
		},
		{
			Name:        "admin-create-property",
			Description: "Add a property to the marketplace",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Property name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "price",
					Description: "Listing price",
					Required:    true,
					MinValue:    float64Ptr(0),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Property category",
					Required:    true,
					Choices:     propertyTypeChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "location",
					Description: "Where it sits",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "details",
					Description: "Flavor text",
				},
			},
		},
		{
			Name:        "admin-delete-property",
			Description: "Remove an unowned property from the marketplace",
			Options:     []*discordgo.ApplicationCommandOption{propertyOpt},
		},
		{
			Name:        "admin-property-key",
			Description: "Look up a property's key",
			Options:     []*discordgo.ApplicationCommandOption{propertyOpt},
		},
		{
			Name:        "inventory-update",
			Description: "Add or remove items from a user's inventory",
			Options: []*discordgo.ApplicationCommandOption{
				userOpt("Whose inventory"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "column",
					Description: "Inventory section",
					Required:    true,
					Choices:     columnChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Item name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "Add or remove",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Add", Value: "add"},
						{Name: "Remove", Value: "remove"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "quantity",
					Description: "How many (default 1)",
					MinValue:    float64Ptr(1),
				},
			},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }
