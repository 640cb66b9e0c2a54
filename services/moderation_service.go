package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/statemachine"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

// ModerationService owns every write to the hotel collection: create, edit,
// delete, admin review and the online/offline toggle.
type ModerationService struct {
	Store  *store.Store
	Images *ImageService

	persister
	clock clock
}

func NewModerationService(s *store.Store, images *ImageService, autosave bool) *ModerationService {
	return &ModerationService{
		Store:     s,
		Images:    images,
		persister: newPersister(s, autosave, "moderation"),
	}
}

// CreateHotelRequest is the body of a new listing. Any status sent by the
// client is ignored.
type CreateHotelRequest struct {
	models.Hotel
	SaveAsDraft bool `json:"save_as_draft"`
}

// Owner identifies who toggles a listing: the owning merchant, or an admin.
type Owner struct {
	MerchantID int
	Admin      bool
}

func (o Owner) actor() statemachine.Actor {
	if o.Admin {
		return statemachine.ActorAdmin
	}
	return statemachine.ActorMerchant
}

// Create stores a new listing in pending, or draft when requested.
func (s *ModerationService) Create(ctx context.Context, req CreateHotelRequest) (models.Hotel, error) {
	h := req.Hotel.Clone()
	if err := validateHotel(&h); err != nil {
		return models.Hotel{}, err
	}
	written, err := s.Images.MaterializeHotel(&h)
	if err != nil {
		return models.Hotel{}, err
	}

	h.Status = models.StatusPending
	if req.SaveAsDraft {
		h.Status = models.StatusDraft
	}
	h.RejectReason = ""
	normalizeCollections(&h)
	h.RecomputeMinPrice()

	now := models.FormatTimestamp(s.clock.now())
	h.CreatedAt, h.UpdatedAt = now, now

	err = s.Store.Write(func(d *store.Data) error {
		h.ID = nextHotelID(d.Hotels)
		assignChildIDs(d.Hotels, &h)
		d.Hotels = append(d.Hotels, h)
		return nil
	})
	if err != nil {
		s.Images.Discard(written)
		return models.Hotel{}, err
	}

	s.log.WithFields(logrus.Fields{"hotel_id": h.ID, "status": h.Status}).Info("hotel created")
	s.persist(ctx)
	return h.Clone(), nil
}

// Edit merges patch over the stored hotel and resubmits it for review. The
// id, created_at and merchant_id cannot be changed.
func (s *ModerationService) Edit(ctx context.Context, id int, patch []byte) (models.Hotel, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(patch, &keys); err != nil {
		return models.Hotel{}, &AppError{Kind: KindValidation, Message: "请求数据格式错误", Err: err}
	}

	var (
		merged models.Hotel
		found  bool
	)
	s.Store.Read(func(d *store.Data) {
		if i := indexOfHotel(d.Hotels, id); i >= 0 {
			merged = d.Hotels[i].Clone()
			found = true
		}
	})
	if !found {
		return models.Hotel{}, NewNotFoundError("酒店不存在")
	}

	// Replaced lists must not inherit elements of the stored ones.
	if _, ok := keys["images"]; ok {
		merged.Images = nil
	}
	if _, ok := keys["rooms"]; ok {
		merged.Rooms = nil
	}
	if _, ok := keys["nearby_places"]; ok {
		merged.NearbyPlaces = nil
	}
	if err := json.Unmarshal(patch, &merged); err != nil {
		return models.Hotel{}, &AppError{Kind: KindValidation, Message: "请求数据格式错误", Err: err}
	}

	if err := validateHotel(&merged); err != nil {
		return models.Hotel{}, err
	}
	written, err := s.Images.MaterializeHotel(&merged)
	if err != nil {
		return models.Hotel{}, err
	}
	normalizeCollections(&merged)
	merged.RecomputeMinPrice()

	err = s.Store.Write(func(d *store.Data) error {
		i := indexOfHotel(d.Hotels, id)
		if i < 0 {
			return NewNotFoundError("酒店不存在")
		}
		current := d.Hotels[i]
		if err := statemachine.CanTransition(current.Status, models.StatusPending, statemachine.ActorMerchant); err != nil {
			return NewConflictError(transitionMessage(current.Status, models.StatusPending), err)
		}

		merged.ID = current.ID
		merged.MerchantID = current.MerchantID
		merged.CreatedAt = current.CreatedAt
		merged.Status = models.StatusPending
		merged.RejectReason = ""
		merged.UpdatedAt = models.FormatTimestamp(s.clock.now())
		assignChildIDs(d.Hotels, &merged)

		d.Hotels[i] = merged
		return nil
	})
	if err != nil {
		s.Images.Discard(written)
		return models.Hotel{}, err
	}

	s.log.WithField("hotel_id", id).Info("hotel edited, resubmitted for review")
	s.persist(ctx)
	return merged.Clone(), nil
}

// Delete removes the hotel with its rooms and nearby places.
func (s *ModerationService) Delete(ctx context.Context, id int) error {
	err := s.Store.Write(func(d *store.Data) error {
		i := indexOfHotel(d.Hotels, id)
		if i < 0 {
			return NewNotFoundError("酒店不存在")
		}
		d.Hotels = append(d.Hotels[:i], d.Hotels[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("hotel_id", id).Info("hotel deleted")
	s.persist(ctx)
	return nil
}

// Review applies an admin decision. rawStatus is one of published,
// approved, rejected or offline; a rejection needs a reason.
func (s *ModerationService) Review(ctx context.Context, id int, rawStatus, reason string) (models.Hotel, error) {
	to, ok := models.ParseHotelStatus(rawStatus)
	if !ok {
		return models.Hotel{}, NewValidationError("无效的状态值")
	}
	to = to.Canonical()
	switch to {
	case models.StatusPublished, models.StatusRejected, models.StatusOffline:
	default:
		return models.Hotel{}, NewValidationError("无效的状态值")
	}

	reason = strings.TrimSpace(reason)
	if to == models.StatusRejected && reason == "" {
		return models.Hotel{}, NewValidationError("请填写拒绝原因")
	}

	return s.transition(ctx, id, to, statemachine.ActorAdmin, func(h *models.Hotel) error {
		h.RejectReason = ""
		if to == models.StatusRejected {
			h.RejectReason = reason
		}
		return nil
	})
}

// SetOnline moves a published listing offline or back. Merchants may only
// touch their own hotels; anything else looks like a missing hotel.
func (s *ModerationService) SetOnline(ctx context.Context, id int, online bool, owner Owner) (models.Hotel, error) {
	if !owner.Admin && owner.MerchantID <= 0 {
		return models.Hotel{}, NewValidationError("请提供商户ID")
	}
	to := models.StatusOffline
	if online {
		to = models.StatusPublished
	}
	return s.transition(ctx, id, to, owner.actor(), ownedBy(owner))
}

// Submit sends a draft to review.
func (s *ModerationService) Submit(ctx context.Context, id int, merchantID int) (models.Hotel, error) {
	if merchantID <= 0 {
		return models.Hotel{}, NewValidationError("请提供商户ID")
	}
	owned := ownedBy(Owner{MerchantID: merchantID})
	return s.transition(ctx, id, models.StatusPending, statemachine.ActorMerchant, func(h *models.Hotel) error {
		if err := owned(h); err != nil {
			return err
		}
		// Other statuses reach pending through an edit.
		if h.Status != models.StatusDraft {
			return NewConflictError(transitionMessage(h.Status, models.StatusPending), nil)
		}
		return nil
	})
}

func ownedBy(owner Owner) func(h *models.Hotel) error {
	return func(h *models.Hotel) error {
		if !owner.Admin && h.MerchantID != owner.MerchantID {
			return NewNotFoundError("酒店不存在")
		}
		return nil
	}
}

// transition validates from -> to for actor and applies it under one write
// lock. check runs before the transition is validated and may reject or
// amend the hotel.
func (s *ModerationService) transition(ctx context.Context, id int, to models.HotelStatus, actor statemachine.Actor, check func(h *models.Hotel) error) (models.Hotel, error) {
	var (
		out  models.Hotel
		from models.HotelStatus
	)
	err := s.Store.Write(func(d *store.Data) error {
		i := indexOfHotel(d.Hotels, id)
		if i < 0 {
			return NewNotFoundError("酒店不存在")
		}
		h := d.Hotels[i].Clone()
		from = h.Status
		if err := check(&h); err != nil {
			return err
		}
		if err := statemachine.CanTransition(from, to, actor); err != nil {
			return NewConflictError(transitionMessage(from, to), err)
		}
		h.Status = to
		h.UpdatedAt = models.FormatTimestamp(s.clock.now())
		d.Hotels[i] = h
		out = h.Clone()
		return nil
	})
	if err != nil {
		return models.Hotel{}, err
	}

	s.log.WithFields(logrus.Fields{
		"hotel_id": id,
		"from":     from,
		"to":       to,
		"actor":    actor,
	}).Info("hotel status changed")
	s.persist(ctx)
	return out, nil
}

var statusLabels = map[models.HotelStatus]string{
	models.StatusDraft:     "草稿",
	models.StatusPending:   "待审核",
	models.StatusPublished: "已发布",
	models.StatusRejected:  "已拒绝",
	models.StatusOffline:   "已下线",
}

func transitionMessage(from, to models.HotelStatus) string {
	return fmt.Sprintf("酒店当前状态为%s，无法变更为%s", statusLabels[from.Canonical()], statusLabels[to.Canonical()])
}

// validateHotel checks the required fields and the room and nearby place
// constraints.
func validateHotel(h *models.Hotel) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Address = strings.TrimSpace(h.Address)
	h.City = strings.TrimSpace(h.City)
	if h.Name == "" || h.Address == "" || h.City == "" || h.StarRating == 0 {
		return NewValidationError("请提供完整的酒店信息")
	}
	if h.StarRating < 1 || h.StarRating > 5 {
		return NewValidationError("酒店星级必须在1到5之间")
	}
	for _, r := range h.Rooms {
		switch {
		case strings.TrimSpace(r.Name) == "":
			return NewValidationError("请提供房型名称")
		case r.Price <= 0:
			return NewValidationError("房型价格必须大于0")
		case r.DiscountPrice != nil && *r.DiscountPrice > r.Price:
			return NewValidationError("优惠价不能高于原价")
		case r.MaxGuests < 1:
			return NewValidationError("最多入住人数至少为1")
		case r.Area <= 0:
			return NewValidationError("房间面积必须大于0")
		}
	}
	for _, p := range h.NearbyPlaces {
		if !p.Type.Valid() {
			return NewValidationError("无效的周边类型")
		}
	}
	return nil
}

// normalizeCollections keeps list fields as JSON arrays rather than null.
func normalizeCollections(h *models.Hotel) {
	if h.Images == nil {
		h.Images = []string{}
	}
	if h.Rooms == nil {
		h.Rooms = []models.Room{}
	}
	if h.NearbyPlaces == nil {
		h.NearbyPlaces = []models.NearbyPlace{}
	}
	for i := range h.Rooms {
		if h.Rooms[i].Images == nil {
			h.Rooms[i].Images = []string{}
		}
	}
}

func nextHotelID(hotels []models.Hotel) int {
	next := 1
	for _, h := range hotels {
		if h.ID >= next {
			next = h.ID + 1
		}
	}
	return next
}

// assignChildIDs gives fresh ids to rooms and nearby places whose id is
// unset, repeated, or owned by another hotel. Room ids are unique across
// the system.
func assignChildIDs(hotels []models.Hotel, h *models.Hotel) {
	takenRooms := map[int]bool{}
	takenPlaces := map[int]bool{}
	maxRoom, maxPlace := 0, 0
	for _, other := range hotels {
		for _, r := range other.Rooms {
			maxRoom = max(maxRoom, r.ID)
			if other.ID != h.ID {
				takenRooms[r.ID] = true
			}
		}
		for _, p := range other.NearbyPlaces {
			maxPlace = max(maxPlace, p.ID)
			if other.ID != h.ID {
				takenPlaces[p.ID] = true
			}
		}
	}
	for _, r := range h.Rooms {
		maxRoom = max(maxRoom, r.ID)
	}
	for _, p := range h.NearbyPlaces {
		maxPlace = max(maxPlace, p.ID)
	}

	for i := range h.Rooms {
		r := &h.Rooms[i]
		if r.ID <= 0 || takenRooms[r.ID] {
			maxRoom++
			r.ID = maxRoom
		}
		takenRooms[r.ID] = true
	}
	for i := range h.NearbyPlaces {
		p := &h.NearbyPlaces[i]
		if p.ID <= 0 || takenPlaces[p.ID] {
			maxPlace++
			p.ID = maxPlace
		}
		takenPlaces[p.ID] = true
	}
}
