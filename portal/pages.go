package portal

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/documounttech/GGalumni/auth"
	"github.com/documounttech/GGalumni/store"
	"github.com/documounttech/GGalumni/types"
)

func (p *Portal) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":  "Alumni Portal",
		"user":   p.viewer(c),
		"news":   latest(store.Load[types.News](p.Records, store.News), 3),
		"events": latest(store.Load[types.Event](p.Records, store.Events), 3),
	})
}

// latest returns up to n newest records, newest first. Collections are in
// insertion order, so the tail is the newest.
func latest[T any](records []T, n int) []T {
	out := make([]T, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out
}

func (p *Portal) DashboardPage(c *gin.Context) {
	users := store.Load[types.User](p.Records, store.Users)
	events := store.Load[types.Event](p.Records, store.Events)
	jobs := store.Load[types.Job](p.Records, store.Jobs)
	news := store.Load[types.News](p.Records, store.News)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":          "Dashboard",
		"user":           p.viewer(c),
		"totalAlumni":    len(users),
		"upcomingEvents": countUpcoming(events, p.Clock()),
		"activeJobs":     len(jobs),
		"recentNews":     len(news),
	})
}

var eventDateLayouts = []string{"2006-01-02", "2006-01-02T15:04", time.RFC3339}

func parseEventDate(value string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// countUpcoming counts events dated now or later. Unparsable dates are not
// upcoming.
func countUpcoming(events []types.Event, now time.Time) int {
	count := 0
	for _, e := range events {
		if t, ok := parseEventDate(e.Date); ok && !t.Before(now) {
			count++
		}
	}
	return count
}

func (p *Portal) DirectoryPage(c *gin.Context) {
	users := store.Load[types.User](p.Records, store.Users)
	search := c.Query("search")
	batch := c.Query("batch")
	department := c.Query("department")

	c.HTML(http.StatusOK, "directory.html", gin.H{
		"title":      "Alumni Directory",
		"user":       p.viewer(c),
		"alumni":     filterProfiles(users, search, batch, department),
		"search":     search,
		"batch":      batch,
		"department": department,
	})
}

// filterProfiles projects users to their public subset and AND-combines the
// three directory filters: case-insensitive substring on name or company,
// exact batch, exact department.
func filterProfiles(users []types.User, search, batch, department string) []types.PublicProfile {
	needle := strings.ToLower(strings.TrimSpace(search))
	profiles := make([]types.PublicProfile, 0, len(users))
	for _, u := range users {
		profile := u.Public()
		if needle != "" &&
			!strings.Contains(strings.ToLower(profile.Name), needle) &&
			!strings.Contains(strings.ToLower(profile.Company), needle) {
			continue
		}
		if batch != "" && profile.Batch != batch {
			continue
		}
		if department != "" && profile.Department != department {
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles
}

func (p *Portal) EventsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "events.html", gin.H{
		"title":  "Events",
		"user":   p.viewer(c),
		"events": store.Load[types.Event](p.Records, store.Events),
	})
}

func (p *Portal) HandleCreateEvent(c *gin.Context) {
	session, _ := auth.CurrentSession(c, p.Sessions)

	event := types.Event{
		ID:          p.newRecordID(),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
		Location:    c.PostForm("location"),
		Organizer:   session.Name,
		CreatedAt:   p.timestamp(),
	}
	err := store.Update(p.Records, store.Events, func(events []types.Event) ([]types.Event, error) {
		return append(events, event), nil
	})
	if err != nil {
		p.storageFault(c, "create event", err)
		return
	}
	c.Redirect(http.StatusFound, "/events")
}

func (p *Portal) JobsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "jobs.html", gin.H{
		"title": "Job Board",
		"user":  p.viewer(c),
		"jobs":  store.Load[types.Job](p.Records, store.Jobs),
	})
}

func (p *Portal) HandleCreateJob(c *gin.Context) {
	session, _ := auth.CurrentSession(c, p.Sessions)

	job := types.Job{
		ID:           p.newRecordID(),
		Title:        c.PostForm("title"),
		Company:      c.PostForm("company"),
		Location:     c.PostForm("location"),
		Description:  c.PostForm("description"),
		Requirements: c.PostForm("requirements"),
		ContactEmail: c.PostForm("contactEmail"),
		PostedBy:     session.Name,
		PostedAt:     p.timestamp(),
	}
	err := store.Update(p.Records, store.Jobs, func(jobs []types.Job) ([]types.Job, error) {
		return append(jobs, job), nil
	})
	if err != nil {
		p.storageFault(c, "create job", err)
		return
	}
	c.Redirect(http.StatusFound, "/jobs")
}

func (p *Portal) NewsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "news.html", gin.H{
		"title": "News",
		"user":  p.viewer(c),
		"news":  store.Load[types.News](p.Records, store.News),
	})
}

func (p *Portal) HandleCreateNews(c *gin.Context) {
	session, _ := auth.CurrentSession(c, p.Sessions)

	item := types.News{
		ID:        p.newRecordID(),
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		Category:  c.PostForm("category"),
		Author:    session.Name,
		CreatedAt: p.timestamp(),
	}
	err := store.Update(p.Records, store.News, func(news []types.News) ([]types.News, error) {
		return append(news, item), nil
	})
	if err != nil {
		p.storageFault(c, "create news", err)
		return
	}
	c.Redirect(http.StatusFound, "/news")
}

func (p *Portal) ProfilePage(c *gin.Context) {
	session, _ := auth.CurrentSession(c, p.Sessions)

	var profile *types.User
	users := store.Load[types.User](p.Records, store.Users)
	for i := range users {
		if users[i].ID == session.UserID {
			profile = &users[i]
			break
		}
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"title":   "My Profile",
		"user":    p.viewer(c),
		"profile": profile,
	})
}

func (p *Portal) HandleUpdateProfile(c *gin.Context) {
	session, _ := auth.CurrentSession(c, p.Sessions)

	err := store.Update(p.Records, store.Users, func(users []types.User) ([]types.User, error) {
		for i := range users {
			if users[i].ID == session.UserID {
				users[i].Phone = c.PostForm("phone")
				users[i].City = c.PostForm("city")
				users[i].Bio = c.PostForm("bio")
				users[i].Company = c.PostForm("company")
				users[i].Position = c.PostForm("position")
				break
			}
		}
		// An id that is no longer on disk is a silent no-op.
		return users, nil
	})
	if err != nil {
		p.storageFault(c, "update profile", err)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}
