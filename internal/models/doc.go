// Package models defines the core domain models for SneakyElves.
//
// # Models
//
//   - User, Group, Membership: identities and the groups that define who shares a feed
//   - Wishlist, Item, WishlistInvite: what people want and how lists are shared
//   - FeedItem and the FeedPayload variants: activity entries fanned out to co-members
//   - Assignment: Secret Santa giver/receiver pairs (santa and elf roles)
//   - Conversation, Message, Notification: anonymous Q&A and the alerts it raises
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are stored as ID strings; optional
//    summaries (UserSummary) are filled in by read-side joins only
// 2. **Typed payloads**: feed payloads stay typed in process and are serialized
//    only by the storage layer
// 3. **Unix timestamps**: all CreatedAt/UpdatedAt fields are Unix seconds
package models
