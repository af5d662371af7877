package schema

import "github.com/billie-coop/propedit/internal/value"

// DefaultTables returns the tables for a vanilla Minecraft server. Each call
// returns fresh maps, so callers may tweak the result before passing it to New.
func DefaultTables() Tables {
	return Tables{
		Groups: []GroupDef{
			{
				ID:    GroupGeneral,
				Label: "General",
				Keys: []string{
					"motd", "max-players", "difficulty", "gamemode",
					"force-gamemode", "hardcore", "pvp", "player-idle-timeout",
				},
			},
			{
				ID:    GroupWorld,
				Label: "World",
				Keys: []string{
					"level-name", "level-seed", "level-type", "spawn-protection",
					"max-world-size", "region-file-compression",
					"generate-structures", "spawn-animals", "spawn-monsters", "spawn-npcs",
				},
			},
			{
				ID:    GroupNetwork,
				Label: "Network",
				Keys: []string{
					"server-ip", "server-port", "online-mode", "enforce-secure-profile",
					"allow-nether", "allow-flight", "view-distance", "simulation-distance",
					"network-compression-threshold", "enable-status", "enable-query", "query.port",
				},
			},
			{
				ID:    GroupSecurity,
				Label: "Security",
				Keys: []string{
					"white-list", "enforce-whitelist", "enable-command-block",
					"op-permission-level", "enable-rcon", "rcon.password", "rcon.port",
				},
			},
		},

		Labels: map[string]string{
			"motd":                          "Server description",
			"max-players":                   "Max players",
			"difficulty":                    "Difficulty",
			"gamemode":                      "Game mode",
			"force-gamemode":                "Force game mode",
			"hardcore":                      "Hardcore",
			"pvp":                           "PvP",
			"player-idle-timeout":           "Idle kick (minutes)",
			"level-name":                    "World folder",
			"level-seed":                    "World seed",
			"level-type":                    "World type",
			"spawn-protection":              "Spawn protection",
			"max-world-size":                "Max world radius",
			"region-file-compression":       "Region compression",
			"generate-structures":           "Generate structures",
			"spawn-animals":                 "Spawn animals",
			"spawn-monsters":                "Spawn monsters",
			"spawn-npcs":                    "Spawn NPCs",
			"server-ip":                     "Bind address",
			"server-port":                   "Server port",
			"online-mode":                   "Online mode",
			"enforce-secure-profile":        "Secure chat",
			"allow-nether":                  "Allow Nether",
			"allow-flight":                  "Allow flight",
			"view-distance":                 "View distance",
			"simulation-distance":           "Simulation distance",
			"network-compression-threshold": "Compression threshold",
			"enable-status":                 "Show in server list",
			"enable-query":                  "Enable query",
			"query.port":                    "Query port",
			"white-list":                    "Whitelist",
			"enforce-whitelist":             "Enforce whitelist",
			"enable-command-block":          "Command blocks",
			"op-permission-level":           "Operator level",
			"enable-rcon":                   "Enable RCON",
			"rcon.password":                 "RCON password",
			"rcon.port":                     "RCON port",
		},

		Choices: map[string][]Choice{
			"level-type": {
				{Value: "minecraft:normal", Label: "Normal"},
				{Value: "minecraft:flat", Label: "Flat"},
				{Value: "minecraft:large_biomes", Label: "Large biomes"},
				{Value: "minecraft:amplified", Label: "Amplified"},
			},
			"difficulty": {
				{Value: "peaceful", Label: "Peaceful"},
				{Value: "easy", Label: "Easy"},
				{Value: "normal", Label: "Normal"},
				{Value: "hard", Label: "Hard"},
			},
			"gamemode": {
				{Value: "survival", Label: "Survival"},
				{Value: "creative", Label: "Creative"},
				{Value: "adventure", Label: "Adventure"},
				{Value: "spectator", Label: "Spectator"},
			},
			"region-file-compression": {
				{Value: "deflate", Label: "Deflate"},
				{Value: "lz4", Label: "LZ4"},
				{Value: "none", Label: "None"},
			},
		},

		Bounds: map[string]Range{
			"max-players":         {Min: 1, Max: 1000},
			"server-port":         {Min: 1, Max: 65535},
			"view-distance":       {Min: 1, Max: 32},
			"simulation-distance": {Min: 1, Max: 32},
			"spawn-protection":    {Min: 0, Max: 10000},
			"rcon.port":           {Min: 1, Max: 65535},
			"query.port":          {Min: 1, Max: 65535},
			"op-permission-level": {Min: 0, Max: 4},
			"max-world-size":      {Min: 1, Max: 29999984},
			"player-idle-timeout": {Min: 0, Max: 1440},
		},

		Placeholders: map[string]string{
			"motd":          "Describe your server",
			"level-seed":    "Seed for world generation",
			"level-name":    "world",
			"server-ip":     "Leave empty to listen on all addresses",
			"rcon.password": "Password for RCON access",
		},

		Sensitive: map[string]bool{
			"rcon.password": true,
		},

		Defaults: []DefaultEntry{
			{"accepts-transfers", value.Bool(false)},
			{"allow-flight", value.Bool(false)},
			{"allow-nether", value.Bool(true)},
			{"broadcast-console-to-ops", value.Bool(true)},
			{"broadcast-rcon-to-ops", value.Bool(true)},
			{"bug-report-link", value.Text("")},
			{"difficulty", value.Text("easy")},
			{"enable-command-block", value.Bool(false)},
			{"enable-jmx-monitoring", value.Bool(false)},
			{"enable-query", value.Bool(false)},
			{"enable-rcon", value.Bool(false)},
			{"enable-status", value.Bool(true)},
			{"enforce-secure-profile", value.Bool(false)},
			{"enforce-whitelist", value.Bool(false)},
			{"entity-broadcast-range-percentage", value.Int(100)},
			{"force-gamemode", value.Bool(false)},
			{"function-permission-level", value.Int(2)},
			{"gamemode", value.Text("survival")},
			{"generate-structures", value.Bool(true)},
			{"generator-settings", value.Text("{}")},
			{"hardcore", value.Bool(false)},
			{"hide-online-players", value.Bool(false)},
			{"initial-disabled-packs", value.Text("")},
			{"initial-enabled-packs", value.Text("vanilla")},
			{"level-name", value.Text("world")},
			{"level-seed", value.Text("")},
			{"level-type", value.Text("minecraft:normal")},
			{"log-ips", value.Bool(true)},
			{"max-chained-neighbor-updates", value.Int(1000000)},
			{"max-players", value.Int(20)},
			{"max-tick-time", value.Int(60000)},
			{"max-world-size", value.Int(29999984)},
			{"motd", value.Text("A Minecraft Server")},
			{"network-compression-threshold", value.Int(256)},
			{"online-mode", value.Bool(true)},
			{"op-permission-level", value.Int(4)},
			{"player-idle-timeout", value.Int(0)},
			{"prevent-proxy-connections", value.Bool(false)},
			{"pvp", value.Bool(true)},
			{"query.port", value.Int(25565)},
			{"rate-limit", value.Int(0)},
			{"rcon.password", value.Text("")},
			{"rcon.port", value.Int(25575)},
			{"region-file-compression", value.Text("deflate")},
			{"require-resource-pack", value.Bool(false)},
			{"resource-pack", value.Text("")},
			{"resource-pack-id", value.Text("")},
			{"resource-pack-prompt", value.Text("")},
			{"resource-pack-sha1", value.Text("")},
			{"server-ip", value.Text("")},
			{"server-port", value.Int(25565)},
			{"simulation-distance", value.Int(10)},
			{"spawn-animals", value.Bool(true)},
			{"spawn-monsters", value.Bool(true)},
			{"spawn-npcs", value.Bool(true)},
			{"spawn-protection", value.Int(16)},
			{"sync-chunk-writes", value.Bool(true)},
			{"text-filtering-config", value.Text("")},
			{"use-native-transport", value.Bool(true)},
			{"view-distance", value.Int(10)},
			{"white-list", value.Bool(false)},
		},
	}
}
