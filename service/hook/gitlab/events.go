package gitlab

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/sliceutil"
	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
)

const (
	masterBranch          = "master"
	failedPipelineStatus  = "failed"
	deleteWikiPageAction  = "delete"
	updateIssueAction     = "update"
	defaultWikiPageAction = "modified"
)

var notifiedMergeRequestActions = []string{"merge", "open"}

func missingField(event, field string) error {
	return errors.Errorf("%s event: missing '%s'", event, field)
}

func gitlabUsername(projectName string) string {
	return "gitlab/" + projectName
}

func (d *Dispatcher) mergeRequestEvent(event MergeRequestEventModel) hookCommon.TransformResultModel {
	mr := event.ObjectAttributes
	switch {
	case event.User == nil:
		return hookCommon.TransformResultModel{Error: missingField("merge request", "user")}
	case mr == nil:
		return hookCommon.TransformResultModel{Error: missingField("merge request", "object_attributes")}
	case mr.Target == nil:
		return hookCommon.TransformResultModel{Error: missingField("merge request", "object_attributes.target")}
	}

	if !sliceutil.IsStringInSlice(mr.Action, notifiedMergeRequestActions) {
		return hookCommon.TransformResultModel{
			Error:      fmt.Errorf("Merge Request action doesn't require a notification: %s", mr.Action),
			ShouldSkip: true,
		}
	}

	sourceAvatar := ""
	if mr.Source != nil {
		sourceAvatar = mr.Source.AvatarURL
	}
	text := fmt.Sprintf("%sd MR [#%d %s](%s)\n%s into %s", mr.Action, mr.IID, mr.Title, mr.URL, mr.SourceBranch, mr.TargetBranch)

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: gitlabUsername(mr.Target.Name),
			IconURL:  d.config.IconURL(mr.Target.AvatarURL, sourceAvatar, event.User.AvatarURL),
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.MakeAttachment(event.User, text, mr.UpdatedAt, ""),
			},
		},
	}
}

// notedObject describes the single object a comment was written on.
func notedObject(event NoteEventModel, url string) (string, error) {
	descriptions := []string{}
	if mr := event.MergeRequest; mr != nil {
		descriptions = append(descriptions, fmt.Sprintf("MR [#%d %s](%s)", mr.ID, mr.Title, url))
	}
	if commit := event.Commit; commit != nil {
		descriptions = append(descriptions, fmt.Sprintf("commit [%s](%s)", hookCommon.ShortSHA(commit.ID), url))
	}
	if issue := event.Issue; issue != nil {
		descriptions = append(descriptions, fmt.Sprintf("issue [#%d %s](%s)", issue.ID, issue.Title, url))
	}
	if snippet := event.Snippet; snippet != nil {
		descriptions = append(descriptions, fmt.Sprintf("code snippet [#%d %s](%s)", snippet.ID, snippet.Title, url))
	}

	switch len(descriptions) {
	case 0:
		return "", errors.New("note event: unsupported context, none of 'merge_request', 'commit', 'issue' or 'snippet' is present")
	case 1:
		return descriptions[0], nil
	default:
		return "", errors.Errorf("note event: ambiguous context, %d of 'merge_request', 'commit', 'issue' and 'snippet' are present", len(descriptions))
	}
}

// commentPolicy tells if comments of the user are suppressed.
func (d *Dispatcher) commentPolicy(user *hookCommon.UserModel, isConfidential bool) (hookCommon.TransformResultModel, bool) {
	if isConfidential && d.config.IgnoreConfidential {
		return hookCommon.TransformResultModel{
			Error:      errors.New("Confidential comments are not notified"),
			ShouldSkip: true,
		}, true
	}
	if user != nil && sliceutil.IsStringInSlice(user.Username, d.config.BotAccounts) {
		return hookCommon.TransformResultModel{
			Error:      fmt.Errorf("Comment written by a bot account: %s", user.Username),
			ShouldSkip: true,
		}, true
	}
	return hookCommon.TransformResultModel{}, false
}

func (d *Dispatcher) commentEvent(event NoteEventModel, isConfidential bool) hookCommon.TransformResultModel {
	if result, isSuppressed := d.commentPolicy(event.User, isConfidential); isSuppressed {
		return result
	}

	user := event.User
	if user == nil {
		return hookCommon.TransformResultModel{Error: missingField("note", "user")}
	}

	project := projectOrRepository(event.Project, event.Repository)
	comment := event.ObjectAttributes
	switch {
	case project == nil:
		return hookCommon.TransformResultModel{Error: missingField("note", "project")}
	case comment == nil:
		return hookCommon.TransformResultModel{Error: missingField("note", "object_attributes")}
	}

	noted, err := notedObject(event, comment.URL)
	if err != nil {
		return hookCommon.TransformResultModel{Error: err}
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: gitlabUsername(project.Name),
			IconURL:  d.config.IconURL(project.AvatarURL, user.AvatarURL),
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.MakeAttachment(user, "commented on "+noted, comment.UpdatedAt, ""),
			},
		},
	}
}

func (d *Dispatcher) issueEvent(event IssueEventModel, isConfidential bool) hookCommon.TransformResultModel {
	if isConfidential && d.config.IgnoreConfidential {
		return hookCommon.TransformResultModel{
			Error:      errors.New("Confidential issues are not notified"),
			ShouldSkip: true,
		}
	}

	project := projectOrRepository(event.Project, event.Repository)
	issue := event.ObjectAttributes
	switch {
	case project == nil:
		return hookCommon.TransformResultModel{Error: missingField("issue", "project")}
	case issue == nil:
		return hookCommon.TransformResultModel{Error: missingField("issue", "object_attributes")}
	}

	userName, userAvatar := "", ""
	if event.User != nil {
		userName, userAvatar = event.User.Name, event.User.AvatarURL
	}

	userAction := issue.State
	if issue.Action == updateIssueAction {
		userAction = "updated"
	}

	text := ""
	assigned := ""
	if assignee := event.getAssignee(); assignee != nil {
		assigned = fmt.Sprintf("*Assigned to*: @%s\n", assignee.Username)
		if assignee.Name != userName {
			text = hookCommon.AtName(assignee)
		}
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: gitlabUsername(project.Name),
			IconURL:  d.config.IconURL(project.AvatarURL, userAvatar),
			Text:     text,
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.MakeAttachment(
					event.User,
					fmt.Sprintf("%s an issue _[%s](%s)_ on %s.\n%s", userAction, issue.Title, issue.URL, project.Name, assigned),
					issue.UpdatedAt,
					"",
				),
			},
		},
	}
}

func (d *Dispatcher) tagEvent(event TagPushEventModel) hookCommon.TransformResultModel {
	project := projectOrRepository(event.Project, event.Repository)
	switch {
	case project == nil:
		return hookCommon.TransformResultModel{Error: missingField("tag push", "project")}
	case event.Ref == "":
		return hookCommon.TransformResultModel{Error: missingField("tag push", "ref")}
	}

	webURL := project.getWebURL()
	tag := hookCommon.RefParser(event.Ref)
	user := &hookCommon.UserModel{Name: event.UserName, AvatarURL: event.UserAvatar}

	var message string
	if event.CheckoutSHA == nil {
		message = fmt.Sprintf("deleted tag [%s](%s/tags/)", tag, webURL)
	} else {
		message = fmt.Sprintf("pushed tag [%s %s](%s/tags/%s)", tag, hookCommon.ShortSHA(*event.CheckoutSHA), webURL, tag)
	}

	text := ""
	if d.config.MentionAllAllowed {
		text = "@all"
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: gitlabUsername(project.Name),
			IconURL:  d.config.IconURL(project.AvatarURL, event.UserAvatar),
			Text:     text,
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.MakeAttachment(user, message, "", ""),
			},
		},
	}
}

func (d *Dispatcher) pipelineEvent(event PipelineEventModel) hookCommon.TransformResultModel {
	project := projectOrRepository(event.Project, event.Repository)
	pipeline := event.ObjectAttributes
	switch {
	case project == nil:
		return hookCommon.TransformResultModel{Error: missingField("pipeline", "project")}
	case pipeline == nil:
		return hookCommon.TransformResultModel{Error: missingField("pipeline", "object_attributes")}
	}

	if pipeline.Ref != masterBranch || pipeline.Status != failedPipelineStatus {
		return hookCommon.TransformResultModel{
			Error:      fmt.Errorf("Pipeline doesn't require a notification: %s on %s", pipeline.Status, pipeline.Ref),
			ShouldSkip: true,
		}
	}

	commit := event.Commit
	switch {
	case commit == nil:
		return hookCommon.TransformResultModel{Error: missingField("pipeline", "commit")}
	case commit.Author == nil:
		return hookCommon.TransformResultModel{Error: missingField("pipeline", "commit.author")}
	}

	pipelineTime := pipeline.FinishedAt
	if pipelineTime == "" {
		pipelineTime = pipeline.CreatedAt
	}
	user := event.getUser()
	text := fmt.Sprintf("Master pipeline returned *%s* for commit [%s](%s) made by *%s*",
		pipeline.Status, hookCommon.ShortSHA(commit.ID), commit.URL, commit.Author.Name)

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: gitlabUsername(project.Name),
			IconURL:  d.config.IconURL(project.AvatarURL, user.AvatarURL),
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.MakeAttachment(user, text, pipelineTime, d.config.StatusesColors[pipeline.Status]),
			},
		},
	}
}

func wikiPageTitle(wikiPage WikiPageAttributesModel) string {
	if wikiPage.Action == deleteWikiPageAction {
		return wikiPage.Title
	}
	return fmt.Sprintf("[%s](%s)", wikiPage.Title, wikiPage.URL)
}

func (d *Dispatcher) wikiEvent(event WikiPageEventModel) hookCommon.TransformResultModel {
	wikiPage := event.ObjectAttributes
	switch {
	case event.User == nil:
		return hookCommon.TransformResultModel{Error: missingField("wiki page", "user")}
	case event.Project == nil:
		return hookCommon.TransformResultModel{Error: missingField("wiki page", "project")}
	case wikiPage == nil:
		return hookCommon.TransformResultModel{Error: missingField("wiki page", "object_attributes")}
	}

	userAction, ok := d.config.ActionVerbs[wikiPage.Action]
	if !ok {
		userAction = defaultWikiPageAction
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: event.Project.PathWithNamespace,
			IconURL:  d.config.IconURL(event.Project.AvatarURL, event.User.AvatarURL),
			Text:     fmt.Sprintf("The wiki page %s was %s by %s", wikiPageTitle(*wikiPage), userAction, event.User.Name),
		},
	}
}

// systemEventAction "user_add_to_team" -> "added"
func (d *Dispatcher) systemEventAction(eventName string) string {
	parts := strings.Split(eventName, "_")
	if len(parts) < 2 {
		return ""
	}
	return d.config.ActionVerbs[parts[1]]
}

func (d *Dispatcher) systemEvent(event SystemEventModel, payload []byte) hookCommon.TransformResultModel {
	if event.EventName == "" {
		return hookCommon.TransformResultModel{Error: missingField("system", "event_name")}
	}

	action := d.systemEventAction(event.EventName)
	var text string
	switch event.EventName {
	case "project_create", "project_destroy", "project_update":
		text = fmt.Sprintf("Project `%s` %s.", event.PathWithNamespace, action)
	case "project_rename", "project_transfer":
		text = fmt.Sprintf("Project `%s` %s to `%s`.", event.OldPathWithNamespace, action, event.PathWithNamespace)
	case "user_add_to_team", "user_remove_from_team":
		text = fmt.Sprintf("User `%s` was %s to project `%s` with `%s` access.", event.UserUsername, action, event.ProjectPathWithNamespace, event.ProjectAccess)
	case "user_add_to_group", "user_remove_from_group":
		text = fmt.Sprintf("User `%s` was %s to group `%s` with `%s` access.", event.UserUsername, action, event.GroupPath, event.GroupAccess)
	case "user_create", "user_destroy":
		text = fmt.Sprintf("User `%s` was %s.", event.Username, action)
	case "user_rename":
		text = fmt.Sprintf("User `%s` was %s to `%s`.", event.OldUsername, action, event.Username)
	case "key_create", "key_destroy":
		text = fmt.Sprintf("Key `%s` was %s.", event.Username, action)
	case "group_create", "group_destroy":
		text = fmt.Sprintf("Group `%s` was %s.", event.Path, action)
	case "group_rename":
		text = fmt.Sprintf("Group `%s` was %s to `%s`.", event.OldFullPath, action, event.FullPath)
	default:
		text = "Unknown system event"
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Text: text,
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.RawAttachment(rawPayload(payload)),
			},
		},
	}
}

func (d *Dispatcher) unknownEvent(eventType string, payload []byte) hookCommon.TransformResultModel {
	// best effort, the payload might not even be a JSON object
	var event UnknownEventModel
	_ = decodePayload(payload, &event)

	username, avatar := event.UserName, event.UserAvatar
	if event.User != nil {
		username, avatar = event.User.Name, event.User.AvatarURL
	}
	if username == "" {
		username = "Unknown user"
	}

	return hookCommon.TransformResultModel{
		Message: &hookCommon.MessageModel{
			Username: username,
			Text:     fmt.Sprintf("Unknown event '%s' occured. Data attached.", eventType),
			IconURL:  d.config.IconURL(avatar),
			Attachments: []hookCommon.AttachmentModel{
				d.attachments.RawAttachment(rawPayload(payload)),
			},
		},
	}
}
