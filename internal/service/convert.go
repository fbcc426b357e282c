package service

import (
	"github.com/NJCA88/SneakyElves/internal/models"
	"github.com/NJCA88/SneakyElves/pkg/api"
)

func toAPIUser(u *models.User, memberships []models.Membership) *api.User {
	out := &api.User{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		IsAdmin:           u.IsAdmin,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
		Memberships:       make([]api.Membership, len(memberships)),
	}
	for i, m := range memberships {
		out.Memberships[i] = toAPIMembership(m)
	}
	return out
}

func toAPIMembership(m models.Membership) api.Membership {
	return api.Membership{GroupID: m.GroupID, GroupName: m.GroupName, Role: string(m.Role)}
}

// toAPISummary drops the email unless withEmail is set.
func toAPISummary(s *models.UserSummary, withEmail bool) *api.UserSummary {
	if s == nil {
		return nil
	}
	out := &api.UserSummary{ID: s.ID, Name: s.Name, ProfilePictureURL: s.ProfilePictureURL}
	if withEmail {
		out.Email = s.Email
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	out := &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		InviteCode:  g.InviteCode,
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt,
	}
	for _, m := range g.Members {
		member := api.Member{UserID: m.UserID, Role: string(m.Role)}
		if m.User != nil {
			member.Name = m.User.Name
			member.Email = m.User.Email
			member.ProfilePictureURL = m.User.ProfilePictureURL
		}
		out.Members = append(out.Members, member)
	}
	return out
}

func toAPIItem(item *models.Item) *api.Item {
	return &api.Item{
		ID:         item.ID,
		WishlistID: item.WishlistID,
		Name:       item.Name,
		Price:      item.Price,
		URL:        item.URL,
		Note:       item.Note,
		ImageURL:   item.ImageURL,
		Purchased:  item.Purchased,
		Rank:       item.Rank,
		CreatedAt:  item.CreatedAt,
	}
}

// toAPIWishlist hides purchase state and keeps the share token when the viewer owns the list.
func toAPIWishlist(w *models.Wishlist, viewerIsOwner bool) *api.Wishlist {
	out := &api.Wishlist{
		ID:                  w.ID,
		Title:               w.Title,
		Owner:               toAPISummary(w.Owner, false),
		GeneralInstructions: w.GeneralInstructions,
		Items:               make([]api.Item, len(w.Items)),
		CreatedAt:           w.CreatedAt,
	}
	if viewerIsOwner {
		out.ShareToken = w.ShareToken
	}
	for i := range w.Items {
		item := toAPIItem(&w.Items[i])
		if viewerIsOwner {
			item.Purchased = false
		}
		out.Items[i] = *item
	}
	return out
}

func toAPIAssignment(a *models.Assignment) api.Assignment {
	return api.Assignment{
		ID:        a.ID,
		Giver:     toAPISummary(a.Giver, true),
		Receiver:  toAPISummary(a.Receiver, true),
		Role:      string(a.Role),
		Year:      a.Year,
		CreatedAt: a.CreatedAt,
	}
}

func toAPINotification(n *models.Notification) api.Notification {
	return api.Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// toAPIMessage never exposes the author: the owner/asker distinction is enough for the thread.
func toAPIMessage(m *models.Message, ownerID, viewerID string) *api.Message {
	return &api.Message{
		ID:        m.ID,
		Body:      m.Body,
		FromOwner: m.AuthorID == ownerID,
		Mine:      m.AuthorID == viewerID,
		CreatedAt: m.CreatedAt,
	}
}

func toAPIConversation(c *models.Conversation, ownerID, viewerID string) api.Conversation {
	out := api.Conversation{
		ID:         c.ID,
		WishlistID: c.WishlistID,
		ItemID:     c.ItemID,
		ItemName:   c.ItemName,
		Mine:       c.AuthorID == viewerID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for i := range c.Messages {
		out.Messages = append(out.Messages, *toAPIMessage(&c.Messages[i], ownerID, viewerID))
	}
	if c.LastMessage != nil {
		out.LastMessage = toAPIMessage(c.LastMessage, ownerID, viewerID)
	}
	return out
}
