package services

import (
	"fmt"
	"hobbyboard/internal/models"
	"hobbyboard/internal/providers"
	"hobbyboard/internal/records"
	"hobbyboard/internal/structures"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gookit/validate"
)

const (
	imagePrefix         = "image_"
	defaultDisplayLimit = 50
)

type CommunityServiceInterface interface {
	RecordVisit() (int, error)
	VisitorCount() int

	Hobbies() []models.Hobby
	AddHobbyComment(slug string, in models.CommentInput) (models.Comment, error)
	HobbyComments(slug string) ([]models.Comment, error)
	TotalPosts() int

	CheckIn(in models.AttendanceInput) (models.Attendance, error)
	AttendanceBoard() models.AttendanceBoard
	TodayAttendance() int
	TotalAttendance() int

	GalleryImages() []models.GalleryImage
	GalleryImage(imageID string) (models.GalleryImage, error)
	ToggleLike(imageID string) (models.LikeState, error)
	AddGalleryComment(imageID string, in models.CommentInput) (models.GalleryComment, error)

	Summary() models.Summary
	NormalizeHobbyKeys() (int, error)
}

// CommunityService is the only writer of the record store. Every
// operation runs under one mutex so each read-modify-write completes
// before the next one starts.
type CommunityService struct {
	mu           sync.Mutex
	store        *records.RecordStore
	logger       providers.Logger
	catalog      *models.HobbyCatalog
	loc          *time.Location
	now          func() time.Time
	lastID       int64
	displayLimit int
	oncePerDay   bool
	gallerySize  int
}

func NewCommunityService(conf *structures.Config, store *records.RecordStore, logger providers.Logger) (CommunityServiceInterface, error) {
	loc := time.Local
	if conf.Store.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(conf.Store.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone: %w", err)
		}
	}

	hobbyConf := conf.Hobbies
	if len(hobbyConf) == 0 {
		hobbyConf = structures.DefaultHobbies()
	}
	hobbies := make([]models.Hobby, 0, len(hobbyConf))
	for _, h := range hobbyConf {
		hobbies = append(hobbies, models.Hobby{
			Name:    h.Name,
			Slug:    h.Slug,
			Icon:    h.Icon,
			Color:   h.Color,
			Members: h.Members,
		})
	}

	displayLimit := conf.Attendance.DisplayLimit
	if displayLimit <= 0 {
		displayLimit = defaultDisplayLimit
	}

	return &CommunityService{
		store:        store,
		logger:       logger,
		catalog:      models.NewHobbyCatalog(hobbies),
		loc:          loc,
		now:          time.Now,
		displayLimit: displayLimit,
		oncePerDay:   conf.Attendance.OncePerDay,
		gallerySize:  max(conf.Gallery.Size, 1),
	}, nil
}

// nextID returns the creation time in milliseconds, bumped when needed so
// ids stay strictly increasing within the process.
func (cs *CommunityService) nextID(at time.Time) int64 {
	id := at.UnixMilli()
	if id <= cs.lastID {
		id = cs.lastID + 1
	}
	cs.lastID = id
	return id
}

func (cs *CommunityService) timestamp() time.Time {
	return cs.now().UTC().Truncate(time.Millisecond)
}

func (cs *CommunityService) sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(cs.loc).Date()
	by, bm, bd := b.In(cs.loc).Date()
	return ay == by && am == bm && ad == bd
}

func validateInput(in interface{}) error {
	v := validate.Struct(in)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrValidation, v.Errors.One())
	}
	return nil
}

func (cs *CommunityService) RecordVisit() (int, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.store.IncrementCounter(records.KeyVisitorCount)
}

func (cs *CommunityService) VisitorCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.store.Counter(records.KeyVisitorCount)
}

func (cs *CommunityService) Hobbies() []models.Hobby {
	return cs.catalog.All()
}

func (cs *CommunityService) AddHobbyComment(slug string, in models.CommentInput) (models.Comment, error) {
	if _, ok := cs.catalog.Find(slug); !ok {
		return models.Comment{}, fmt.Errorf("hobby %q: %w", slug, ErrNotFound)
	}
	in.Author = strings.TrimSpace(in.Author)
	in.Text = strings.TrimSpace(in.Text)
	if err := validateInput(&in); err != nil {
		return models.Comment{}, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	at := cs.timestamp()
	c := models.Comment{
		ID:     cs.nextID(at),
		Author: in.Author,
		Text:   in.Text,
		Date:   at,
	}
	if err := records.AppendRecordUnder(cs.store, records.KeyHobbyComments, slug, c); err != nil {
		return models.Comment{}, err
	}
	cs.logger.Debugf(providers.TypeStore, "Comment %d added to %s", c.ID, slug)
	return c, nil
}

func (cs *CommunityService) HobbyComments(slug string) ([]models.Comment, error) {
	if _, ok := cs.catalog.Find(slug); !ok {
		return nil, fmt.Errorf("hobby %q: %w", slug, ErrNotFound)
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return records.LoadSequence[models.Comment](cs.store, records.KeyHobbyComments, slug), nil
}

// NormalizeHobbyKeys moves comments stored under a hobby's display name,
// as the browser page kept them, to the hobby's slug. It returns how many
// comments were moved.
func (cs *CommunityService) NormalizeHobbyKeys() (int, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	comments := records.Load(cs.store, records.KeyHobbyComments, map[string][]models.Comment{})
	moved, changed := 0, false
	for _, h := range cs.catalog.All() {
		legacy, ok := comments[h.Name]
		if !ok || h.Name == h.Slug {
			continue
		}
		merged := append(comments[h.Slug], legacy...)
		slices.SortStableFunc(merged, func(a, b models.Comment) int {
			return b.Date.Compare(a.Date)
		})
		comments[h.Slug] = merged
		delete(comments, h.Name)
		moved += len(legacy)
		changed = true
	}
	if !changed {
		return 0, nil
	}
	if err := records.Save(cs.store, records.KeyHobbyComments, comments); err != nil {
		return 0, err
	}
	cs.logger.Infof(providers.TypeStore, "Moved %d comments from hobby names to slugs", moved)
	return moved, nil
}

func (cs *CommunityService) TotalPosts() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.store.CountEntries(records.KeyHobbyComments)
}

func (cs *CommunityService) CheckIn(in models.AttendanceInput) (models.Attendance, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(&in); err != nil {
		return models.Attendance{}, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	at := cs.timestamp()
	if cs.oncePerDay {
		already := records.CountMatching(cs.store, records.KeyAttendance, func(a models.Attendance) bool {
			return a.Name == in.Name && cs.sameDay(a.Date, at)
		})
		if already > 0 {
			return models.Attendance{}, fmt.Errorf("%s already checked in today: %w", in.Name, ErrConflict)
		}
	}

	a := models.Attendance{
		ID:   cs.nextID(at),
		Name: in.Name,
		Date: at,
	}
	if err := records.AppendRecord(cs.store, records.KeyAttendance, a); err != nil {
		return models.Attendance{}, err
	}
	cs.logger.Debugf(providers.TypeStore, "Attendance %d recorded", a.ID)
	return a, nil
}

func (cs *CommunityService) AttendanceBoard() models.AttendanceBoard {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	list := records.Load(cs.store, records.KeyAttendance, []models.Attendance{})
	now := cs.now()
	today := 0
	for _, a := range list {
		if cs.sameDay(a.Date, now) {
			today++
		}
	}
	return models.AttendanceBoard{
		Today:   today,
		Total:   len(list),
		Entries: list[:min(len(list), cs.displayLimit)],
	}
}

func (cs *CommunityService) TodayAttendance() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.todayAttendance()
}

func (cs *CommunityService) todayAttendance() int {
	now := cs.now()
	return records.CountMatching(cs.store, records.KeyAttendance, func(a models.Attendance) bool {
		return cs.sameDay(a.Date, now)
	})
}

func (cs *CommunityService) TotalAttendance() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.store.CountAll(records.KeyAttendance)
}

// imageIDs is the fixed probing sequence image_1 .. image_<gallerySize>.
func (cs *CommunityService) imageIDs() []string {
	ids := make([]string, cs.gallerySize)
	for i := range ids {
		ids[i] = imagePrefix + strconv.Itoa(i+1)
	}
	return ids
}

// imageNumber parses a canonical image id ("image_3", not "image_03").
func (cs *CommunityService) imageNumber(imageID string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(imageID, imagePrefix))
	if err != nil || n < 1 || n > cs.gallerySize || imageID != imagePrefix+strconv.Itoa(n) {
		return 0, false
	}
	return n, true
}

func (cs *CommunityService) checkImage(imageID string) error {
	if _, ok := cs.imageNumber(imageID); !ok {
		return fmt.Errorf("image %q: %w", imageID, ErrNotFound)
	}
	return nil
}

// likedImages reads the viewer's liked set once as a bitmap of image
// numbers. Ids outside the gallery are ignored.
func (cs *CommunityService) likedImages() *roaring.Bitmap {
	liked := roaring.New()
	for _, id := range records.Load(cs.store, records.KeyLikedImages, []string{}) {
		if n, ok := cs.imageNumber(id); ok {
			liked.Add(uint32(n))
		}
	}
	return liked
}

func (cs *CommunityService) GalleryImages() []models.GalleryImage {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	likes := records.Load(cs.store, records.KeyGalleryLikes, map[string]int{})
	comments := records.Load(cs.store, records.KeyGalleryComments, map[string][]models.GalleryComment{})
	liked := cs.likedImages()

	images := make([]models.GalleryImage, 0, cs.gallerySize)
	for i, id := range cs.imageIDs() {
		images = append(images, models.GalleryImage{
			ID:           id,
			Likes:        likes[id],
			Liked:        liked.Contains(uint32(i + 1)),
			CommentCount: len(comments[id]),
		})
	}
	return images
}

func (cs *CommunityService) GalleryImage(imageID string) (models.GalleryImage, error) {
	if err := cs.checkImage(imageID); err != nil {
		return models.GalleryImage{}, err
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	comments := records.LoadSequence[models.GalleryComment](cs.store, records.KeyGalleryComments, imageID)
	return models.GalleryImage{
		ID:           imageID,
		Likes:        cs.store.CounterIn(records.KeyGalleryLikes, imageID),
		Liked:        cs.store.IsMember(records.KeyLikedImages, imageID),
		CommentCount: len(comments),
		Comments:     comments,
	}, nil
}

// ToggleLike moves the viewer between NotLiked and Liked for imageID and
// adjusts the like count by one in the matching direction.
func (cs *CommunityService) ToggleLike(imageID string) (models.LikeState, error) {
	if err := cs.checkImage(imageID); err != nil {
		return models.LikeState{}, err
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	liked, err := cs.store.ToggleMembership(records.KeyLikedImages, imageID)
	if err != nil {
		return models.LikeState{}, err
	}
	delta := 1
	if !liked {
		delta = -1
	}
	likes, err := cs.store.AdjustCounterInMap(records.KeyGalleryLikes, imageID, delta, 0)
	if err != nil {
		// keep the liked set in step with the count
		if _, rbErr := cs.store.ToggleMembership(records.KeyLikedImages, imageID); rbErr != nil {
			cs.logger.Errorf(providers.TypeStore, "Rollback of like on %s failed: %s", imageID, rbErr)
		}
		return models.LikeState{}, err
	}
	return models.LikeState{Image: imageID, Liked: liked, Likes: likes}, nil
}

func (cs *CommunityService) AddGalleryComment(imageID string, in models.CommentInput) (models.GalleryComment, error) {
	if err := cs.checkImage(imageID); err != nil {
		return models.GalleryComment{}, err
	}
	in.Author = strings.TrimSpace(in.Author)
	in.Text = strings.TrimSpace(in.Text)
	if err := validateInput(&in); err != nil {
		return models.GalleryComment{}, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	at := cs.timestamp()
	c := models.GalleryComment{
		ID:     cs.nextID(at),
		Author: in.Author,
		Text:   in.Text,
		Date:   at,
	}
	if err := records.AppendRecordUnder(cs.store, records.KeyGalleryComments, imageID, c); err != nil {
		return models.GalleryComment{}, err
	}
	return c, nil
}

func (cs *CommunityService) Summary() models.Summary {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	comments := records.Load(cs.store, records.KeyHobbyComments, map[string][]models.Comment{})
	hobbies := cs.catalog.All()

	stats := make([]models.HobbyStat, 0, len(hobbies))
	chart := models.ChartSeries{
		Labels:           make([]string, 0, len(hobbies)),
		Data:             make([]int, 0, len(hobbies)),
		BackgroundColors: make([]string, 0, len(hobbies)),
		BorderColors:     make([]string, 0, len(hobbies)),
		AccentColors:     make([]string, 0, len(hobbies)),
	}
	for _, h := range hobbies {
		stats = append(stats, models.HobbyStat{
			Hobby: h,
			Share: cs.catalog.Share(h),
			Posts: len(comments[h.Slug]),
		})
		chart.Labels = append(chart.Labels, h.Name)
		chart.Data = append(chart.Data, h.Members)
		chart.BackgroundColors = append(chart.BackgroundColors, h.Color+"CC")
		chart.BorderColors = append(chart.BorderColors, h.Color)
		chart.AccentColors = append(chart.AccentColors, models.AdjustColor(h.Color, -30))
	}

	return models.Summary{
		VisitorCount:    cs.store.Counter(records.KeyVisitorCount),
		TotalMembers:    cs.catalog.TotalMembers(),
		TotalPosts:      cs.store.CountEntries(records.KeyHobbyComments),
		TodayAttendance: cs.todayAttendance(),
		TotalAttendance: cs.store.CountAll(records.KeyAttendance),
		Hobbies:         stats,
		Chart:           chart,
	}
}
