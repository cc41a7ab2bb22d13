// Package commpost converts archived HTML snapshots of community posts into
// typed records: the post body with its attachments and poll, and the
// comment threads with their replies.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, htmltomarkdown/).
package commpost

// DisabledCommentsIndicator is the help-center link a post page carries
// when its author has turned comments off.
const DisabledCommentsIndicator = "support.google.com/youtube/answer/9706180"
