package gitlab

import (
	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
)

// --------------------------
// --- Webhook Data Model ---

// ProjectModel is used both for "project" and the legacy "repository" objects.
type ProjectModel struct {
	Name              string `json:"name"`
	AvatarURL         string `json:"avatar_url"`
	WebURL            string `json:"web_url"`
	Homepage          string `json:"homepage"`
	PathWithNamespace string `json:"path_with_namespace"`
}

func (project ProjectModel) getWebURL() string {
	if project.WebURL != "" {
		return project.WebURL
	}
	return project.Homepage
}

// projectOrRepository newer GitLab versions send "project", older ones "repository"
func projectOrRepository(project, repository *ProjectModel) *ProjectModel {
	if project != nil {
		return project
	}
	return repository
}

// MergeRequestAttributesModel ...
type MergeRequestAttributesModel struct {
	IID          int           `json:"iid"`
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	Action       string        `json:"action"`
	SourceBranch string        `json:"source_branch"`
	TargetBranch string        `json:"target_branch"`
	UpdatedAt    string        `json:"updated_at"`
	Source       *ProjectModel `json:"source"`
	Target       *ProjectModel `json:"target"`
}

// MergeRequestEventModel ...
type MergeRequestEventModel struct {
	User             *hookCommon.UserModel        `json:"user"`
	ObjectAttributes *MergeRequestAttributesModel `json:"object_attributes"`
}

// NoteAttributesModel ...
type NoteAttributesModel struct {
	URL          string `json:"url"`
	NoteableType string `json:"noteable_type"`
	UpdatedAt    string `json:"updated_at"`
}

// NotedItemModel is the merge request, issue or snippet a comment was written on.
type NotedItemModel struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// NotedCommitModel ...
type NotedCommitModel struct {
	ID string `json:"id"`
}

// NoteAuthorModel is the part of a note read before anything else.
type NoteAuthorModel struct {
	User *hookCommon.UserModel `json:"user"`
}

// NoteEventModel ...
type NoteEventModel struct {
	User             *hookCommon.UserModel `json:"user"`
	Project          *ProjectModel         `json:"project"`
	Repository       *ProjectModel         `json:"repository"`
	ObjectAttributes *NoteAttributesModel  `json:"object_attributes"`
	MergeRequest     *NotedItemModel       `json:"merge_request"`
	Commit           *NotedCommitModel     `json:"commit"`
	Issue            *NotedItemModel       `json:"issue"`
	Snippet          *NotedItemModel       `json:"snippet"`
}

// IssueAttributesModel ...
type IssueAttributesModel struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	State     string `json:"state"`
	Action    string `json:"action"`
	UpdatedAt string `json:"updated_at"`
}

// IssueEventModel ...
type IssueEventModel struct {
	User             *hookCommon.UserModel  `json:"user"`
	Project          *ProjectModel          `json:"project"`
	Repository       *ProjectModel          `json:"repository"`
	ObjectAttributes *IssueAttributesModel  `json:"object_attributes"`
	Assignee         *hookCommon.UserModel  `json:"assignee"`
	Assignees        []hookCommon.UserModel `json:"assignees"`
}

func (event IssueEventModel) getAssignee() *hookCommon.UserModel {
	if event.Assignee != nil {
		return event.Assignee
	}
	if len(event.Assignees) > 0 {
		return &event.Assignees[0]
	}
	return nil
}

// TagPushEventModel ...
type TagPushEventModel struct {
	Ref string `json:"ref"`
	// CheckoutSHA is null when the tag was deleted
	CheckoutSHA *string       `json:"checkout_sha"`
	UserName    string        `json:"user_name"`
	UserAvatar  string        `json:"user_avatar"`
	Project     *ProjectModel `json:"project"`
	Repository  *ProjectModel `json:"repository"`
}

// PipelineAttributesModel ...
type PipelineAttributesModel struct {
	Ref        string `json:"ref"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at"`
}

// CommitAuthorModel ...
type CommitAuthorModel struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PipelineCommitModel ...
type PipelineCommitModel struct {
	ID     string             `json:"id"`
	URL    string             `json:"url"`
	Author *CommitAuthorModel `json:"author"`
}

// PipelineEventModel ...
type PipelineEventModel struct {
	ObjectAttributes *PipelineAttributesModel `json:"object_attributes"`
	Commit           *PipelineCommitModel     `json:"commit"`
	Project          *ProjectModel            `json:"project"`
	Repository       *ProjectModel            `json:"repository"`
	UserName         string                   `json:"user_name"`
	UserAvatar       string                   `json:"user_avatar"`
	User             *hookCommon.UserModel    `json:"user"`
}

func (event PipelineEventModel) getUser() *hookCommon.UserModel {
	if event.UserName == "" && event.UserAvatar == "" && event.User != nil {
		return event.User
	}
	return &hookCommon.UserModel{Name: event.UserName, AvatarURL: event.UserAvatar}
}

// WikiPageAttributesModel ...
type WikiPageAttributesModel struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Action string `json:"action"`
}

// WikiPageEventModel ...
type WikiPageEventModel struct {
	User             *hookCommon.UserModel    `json:"user"`
	Project          *ProjectModel            `json:"project"`
	ObjectAttributes *WikiPageAttributesModel `json:"object_attributes"`
}

// SystemEventModel is the flat record of a system hook.
type SystemEventModel struct {
	EventName                string `json:"event_name"`
	PathWithNamespace        string `json:"path_with_namespace"`
	OldPathWithNamespace     string `json:"old_path_with_namespace"`
	ProjectPathWithNamespace string `json:"project_path_with_namespace"`
	ProjectAccess            string `json:"project_access"`
	GroupPath                string `json:"group_path"`
	GroupAccess              string `json:"group_access"`
	UserUsername             string `json:"user_username"`
	Username                 string `json:"username"`
	OldUsername              string `json:"old_username"`
	Path                     string `json:"path"`
	FullPath                 string `json:"full_path"`
	OldFullPath              string `json:"old_full_path"`
}

// UnknownEventModel holds the user fields an unknown event might carry.
type UnknownEventModel struct {
	User       *hookCommon.UserModel `json:"user"`
	UserName   string                `json:"user_name"`
	UserAvatar string                `json:"user_avatar"`
}
