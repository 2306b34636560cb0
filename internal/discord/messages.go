package discord

// Friendly message constants for Discord responses
const (
	// Settings
	MsgGuildNotConfigured = "⚙️ **No servers configured**\nThis guild has no Farming Simulator servers set up yet."
	MsgServerNotFound     = "❓ **Server Not Found**\nCheck the server name or pick one from the list."
	MsgGuildOnly          = "🏠 This command only works inside a server."

	// Ping
	MsgPong        = "Pong! 🏓"
	MsgPongLatency = "Pong! 🏓 Gateway heartbeat: %dms"

	// Subscriptions
	MsgSubscribed         = "🔔 You will now receive great demand alerts by DM."
	MsgUnsubscribed       = "🔕 You will no longer receive great demand alerts."
	MsgAlreadySubscribed  = "🔔 You are already subscribed to great demand alerts."
	MsgNotSubscribed      = "🔕 You were not subscribed to great demand alerts."
	MsgUnknownAlertAction = "❓ Unknown action. Use subscribe or unsubscribe."

	// Status
	MsgServerOffline      = "🔴 **%s is offline**\n%s"
	MsgNoPlayers          = "Nobody is playing on **%s** right now."
	MsgNoDemands          = "No great demands are running on **%s**."
	MsgNoEconomyFeed      = "**%s** has no economy feed configured."
	MsgEconomyUnavailable = "⚠️ The economy feed of **%s** could not be read right now."

	MsgGenericError = "❌ Something went wrong."
)
