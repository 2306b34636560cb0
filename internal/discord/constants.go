package discord

// Embed colors
const (
	ColorOnline  = 0x2ecc71
	ColorOffline = 0xe74c3c
	ColorDemand  = 0xf1c40f
	ColorInfo    = 0x3498db
)

// Footer constants for standardized embed footers
const (
	FooterFarmBot = "FarmBot"
	FooterDemand  = "FarmBot • great demand"
)

// Command and option names
const (
	CommandPing         = "ping"
	CommandStatus       = "status"
	CommandPlayers      = "players"
	CommandDemands      = "demands"
	CommandDemandAlerts = "demandalerts"

	OptionServer = "server"
	OptionAction = "action"

	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// maxAutocompleteChoices is Discord's limit for one autocomplete response
const maxAutocompleteChoices = 25

// Log Messages
const (
	LogMsgBotReady              = "Bot is ready"
	LogMsgBotRunning            = "Discord bot is now running"
	LogMsgCheckingCommands      = "Checking Discord commands..."
	LogMsgCommandsForceUpdated  = "Commands force updated successfully"
	LogMsgCommandsUnchanged     = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged       = "Commands changed, updating..."
	LogMsgCommandsUpdated       = "Commands updated successfully"
	LogMsgRespondFailed         = "Failed to respond to interaction"
	LogMsgDeferFailed           = "Failed to send deferred response"
	LogMsgEditFailed            = "Failed to edit interaction response"
	LogMsgCommandFailed         = "Command failed"
	LogMsgUnhandledAutocomplete = "Unhandled autocomplete command"
	LogMsgAutocompleteFailed    = "Failed to answer autocomplete"
	LogMsgStatusMessageGone     = "Status message was deleted, posting a new one"
	LogMsgHTTPStarting          = "Starting HTTP server"
	LogMsgHTTPFailed            = "HTTP server failed"
	LogMsgHTTPShutdownFailed    = "HTTP server shutdown failed"
)

// Error Messages
const (
	ErrMsgCreateSession     = "error creating Discord session: %w"
	ErrMsgOpenConnection    = "error opening connection: %w"
	ErrMsgFetchCommands     = "failed to fetch existing commands: %w"
	ErrMsgOverwriteCommands = "failed to bulk overwrite commands: %w"
	ErrMsgSendMessage       = "failed to send message: %w"
	ErrMsgEditMessage       = "failed to edit message: %w"
	ErrMsgOpenDM            = "failed to open DM channel: %w"
)
