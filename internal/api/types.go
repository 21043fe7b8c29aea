package api

import "time"

// CardType is one of the three fixed board columns. The set is closed: the
// backend rejects anything else and the board renders exactly these three.
type CardType string

const (
	CardWentWell         CardType = "went_well"
	CardNeedsImprovement CardType = "needs_improvement"
	CardKudos            CardType = "kudos"
)

// RetroStatus mirrors the lifecycle the backend tracks for a retrospective.
type RetroStatus string

const (
	RetroActive    RetroStatus = "active"
	RetroCompleted RetroStatus = "completed"
	RetroArchived  RetroStatus = "archived"
)

// ActionItemStatus is the tracked state of an action item.
type ActionItemStatus string

const (
	StatusOpen       ActionItemStatus = "open"
	StatusInProgress ActionItemStatus = "in_progress"
	StatusCompleted  ActionItemStatus = "completed"
	StatusCancelled  ActionItemStatus = "cancelled"
)

// ActionItemPriority ranks an action item.
type ActionItemPriority string

const (
	PriorityLow    ActionItemPriority = "low"
	PriorityMedium ActionItemPriority = "medium"
	PriorityHigh   ActionItemPriority = "high"
)

// TeamRole controls which member-management actions the UI offers.
type TeamRole string

const (
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

// User is the authenticated identity returned by the auth endpoints.
type User struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	AvatarInitials string    `json:"avatarInitials,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TeamMember is one row of a team's membership list.
type TeamMember struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     TeamRole  `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Team groups users and owns retrospectives and action items.
type Team struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedBy   string       `json:"createdBy"`
	Members     []TeamMember `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreatorRef is the abbreviated user reference embedded in a retrospective.
type CreatorRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CardCount carries the per-column totals the backend denormalizes onto a
// retrospective. Display-only: the live card list is authoritative.
type CardCount struct {
	WentWell         int `json:"wentWell"`
	NeedsImprovement int `json:"needsImprovement"`
	Kudos            int `json:"kudos"`
}

// Retrospective is one board run for a team.
type Retrospective struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	TeamID       string      `json:"teamId"`
	Status       RetroStatus `json:"status"`
	SprintNumber int         `json:"sprintNumber,omitempty"`
	StartDate    string      `json:"startDate,omitempty"`
	EndDate      string      `json:"endDate,omitempty"`
	CreatedBy    CreatorRef  `json:"createdBy"`
	CardCount    *CardCount  `json:"cardCount,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Card is one piece of feedback on a retro board. Votes holds voter user ids,
// each at most once. Type never changes after creation. Deleted cards are
// soft-deleted server side and stay in list responses with IsDeleted set.
type Card struct {
	ID         string    `json:"_id"`
	RetroID    string    `json:"retroId"`
	Type       CardType  `json:"type"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorName string    `json:"authorName"`
	Votes      []string  `json:"votes"`
	IsDeleted  bool      `json:"isDeleted,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ActionItem is tracked follow-up work, created manually or converted from a
// card's content.
type ActionItem struct {
	ID             string             `json:"_id"`
	RetroID        string             `json:"retroId"`
	TeamID         string             `json:"teamId"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	AssignedTo     string             `json:"assignedTo,omitempty"`
	AssignedToName string             `json:"assignedToName,omitempty"`
	Status         ActionItemStatus   `json:"status"`
	Priority       ActionItemPriority `json:"priority"`
	DueDate        string             `json:"dueDate,omitempty"`
	CreatedBy      string             `json:"createdBy"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the account-creation request body.
type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileData updates the current user. Password is optional; empty
// means unchanged.
type UpdateProfileData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// CreateTeamData is the team-creation request body.
type CreateTeamData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InviteMemberData adds a member to a team by email.
type InviteMemberData struct {
	Email string   `json:"email"`
	Role  TeamRole `json:"role,omitempty"`
}

// CreateRetroData is the retrospective-creation request body.
type CreateRetroData struct {
	Name         string `json:"name"`
	SprintNumber int    `json:"sprintNumber,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// RetroFilters narrows a team's retrospective listing.
type RetroFilters struct {
	Search    string
	StartDate string
	EndDate   string
}

// CreateCardData is the card-creation request body.
type CreateCardData struct {
	Type    CardType `json:"type"`
	Content string   `json:"content"`
}

// UpdateCardData updates a card's content, its full voter set, or both.
// Votes is sent whole, never as a delta. The pointer distinguishes "leave
// votes alone" (nil) from "replace with this set", which covers the empty set
// when the last vote is toggled off.
type UpdateCardData struct {
	Content string    `json:"content,omitempty"`
	Votes   *[]string `json:"votes,omitempty"`
}

// CreateActionItemData is the action-item creation request body.
type CreateActionItemData struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	RetroID     string             `json:"retroId"`
	AssignedTo  string             `json:"assignedTo,omitempty"`
	Priority    ActionItemPriority `json:"priority"`
	DueDate     string             `json:"dueDate,omitempty"`
}

// UpdateActionItemData carries a partial action-item edit. Zero-valued fields
// are omitted from the request.
type UpdateActionItemData struct {
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Status      ActionItemStatus   `json:"status,omitempty"`
	AssignedTo  string             `json:"assignedTo,omitempty"`
	Priority    ActionItemPriority `json:"priority,omitempty"`
	DueDate     string             `json:"dueDate,omitempty"`
}

// ActionItemFilters narrows a team's action-item listing.
type ActionItemFilters struct {
	Status  ActionItemStatus
	RetroID string
	Search  string
}
