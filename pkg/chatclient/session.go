// Package chatclient models the client side of the team chat protocol
// without any network dependency: which room is open, the loaded history
// and unread bookkeeping for rooms that are not on screen. Frontends and
// bots embed it and feed it decoded server events.
package chatclient

import "github.com/movetrack/movement_tracking_app/internal/core/domain"

// Session is the per-connection chat view state. It is not safe for
// concurrent use; callers feed it events from a single goroutine.
type Session struct {
	currentTeamID     string
	messages          []domain.Message
	lastSeenMessageID int64
	unread            map[string]int
}

// NewSession creates an empty session with no open room.
func NewSession() *Session {
	return &Session{
		unread: make(map[string]int),
	}
}

// CurrentTeamID returns the id of the open room, or "" before the first join.
func (s *Session) CurrentTeamID() string { return s.currentTeamID }

// Messages returns the loaded history plus any messages received since,
// oldest first. The returned slice is owned by the session.
func (s *Session) Messages() []domain.Message { return s.messages }

// LastSeenMessageID returns the id of the newest message observed in the
// open room, or zero.
func (s *Session) LastSeenMessageID() int64 { return s.lastSeenMessageID }

// Unread returns the pending message count for a room that is not open.
func (s *Session) Unread(teamID string) int { return s.unread[teamID] }

// SwitchTeam records the intent to view a different room and clears its
// unread counter. The caller is expected to issue a join for the new room;
// history stays stale until HandleLoadMessages replaces it.
func (s *Session) SwitchTeam(teamID string) {
	s.currentTeamID = teamID
	delete(s.unread, teamID)
}

// HandleLoadMessages replaces the open room's history with a join response.
// A history snapshot for a room the user has already switched away from is
// discarded.
func (s *Session) HandleLoadMessages(teamID string, messages []domain.Message) {
	if teamID != s.currentTeamID {
		return
	}
	s.messages = append(s.messages[:0], messages...)
	s.lastSeenMessageID = 0
	if n := len(s.messages); n > 0 {
		s.lastSeenMessageID = s.messages[n-1].MessageID
	}
	delete(s.unread, teamID)
}

// HandleReceive folds one broadcast message into the session. Messages for
// the open room append to the history and advance the seen watermark; any
// other room just bumps its unread counter.
func (s *Session) HandleReceive(message domain.Message) {
	if message.TeamID == s.currentTeamID && s.currentTeamID != "" {
		s.messages = append(s.messages, message)
		s.lastSeenMessageID = message.MessageID
		return
	}
	s.unread[message.TeamID]++
}

// ComposeSent reports what a submit does locally: nothing. There is no
// optimistic append; the message shows up via HandleReceive once the server
// broadcasts it back. Returns true when the session is in a room and the
// send is worth issuing.
func (s *Session) ComposeSent(body string) bool {
	return s.currentTeamID != "" && body != ""
}
