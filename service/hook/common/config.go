package common

// NotifierConfig holds the message policy of the chat notifier.
type NotifierConfig struct {
	// MentionAllAllowed only enable it if the bot has the 'mention-all' permission in Rocket.Chat
	MentionAllAllowed bool `envconfig:"MENTION_ALL_ALLOWED"`
	// NotifColor is the default attachment color
	NotifColor          string `envconfig:"NOTIF_COLOR" validate:"hexcolor"`
	IgnoreConfidential  bool   `envconfig:"IGNORE_CONFIDENTIAL"`
	IgnoreUnknownEvents bool   `envconfig:"IGNORE_UNKNOWN_EVENTS"`
	IgnoreErrorMessages bool   `envconfig:"IGNORE_ERROR_MESSAGES"`
	UseRocketChatAvatar bool   `envconfig:"USE_ROCKETCHAT_AVATAR"`
	// DefaultAvatar nil means the avatar from the Rocket.Chat settings is used
	DefaultAvatar  *string           `envconfig:"DEFAULT_AVATAR" validate:"omitempty,url"`
	StatusesColors map[string]string `envconfig:"STATUSES_COLORS" validate:"dive,hexcolor"`
	ActionVerbs    map[string]string `envconfig:"ACTION_VERBS"`
	// AttachmentTitleSize 0 means attachments have no title
	AttachmentTitleSize int `envconfig:"ATTACHMENT_TITLE_SIZE" validate:"gte=0"`
	// BotAccounts comments written by these usernames are never notified
	BotAccounts []string `envconfig:"BOT_ACCOUNTS"`
}

// DefaultNotifierConfig ...
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		MentionAllAllowed:   false,
		NotifColor:          "#6498CC",
		IgnoreConfidential:  true,
		IgnoreUnknownEvents: false,
		IgnoreErrorMessages: false,
		UseRocketChatAvatar: false,
		DefaultAvatar:       nil,
		StatusesColors: map[string]string{
			"success":  "#2faa60",
			"pending":  "#e75e40",
			"failed":   "#d22852",
			"canceled": "#5c5c5c",
			"created":  "#ffc107",
			"running":  "#607d8b",
		},
		ActionVerbs: map[string]string{
			"create":   "created",
			"destroy":  "removed",
			"update":   "updated",
			"rename":   "renamed",
			"transfer": "transferred",
			"add":      "added",
			"remove":   "removed",
		},
		AttachmentTitleSize: 0,
		BotAccounts:         []string{"publicbotatfluid", "internalbotatfluid"},
	}
}

// IconURL returns the message icon: the first non empty avatar,
// or the configured default if none is available.
func (c NotifierConfig) IconURL(avatars ...string) *string {
	if c.UseRocketChatAvatar {
		return nil
	}
	for _, anAvatar := range avatars {
		if anAvatar != "" {
			avatar := anAvatar
			return &avatar
		}
	}
	return c.DefaultAvatar
}
