package payments

import (
	"context"
	"fmt"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/schedule"
	"kasmoni-app-go/internal/domain/slots"
	"kasmoni-app-go/pkg/logger"
)

type SlotResolver interface {
	ResolveRef(ctx context.Context, memberID int64, ref slots.Ref) (*slots.PaymentSlot, bool, error)
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]slots.PaymentSlot, error)
}

type GroupsService interface {
	Get(ctx context.Context, groupID int64) (*groups.Group, error)
	ListActiveForMonth(ctx context.Context, m month.Month) ([]groups.Group, error)
}

type ScheduleService interface {
	ListByMember(ctx context.Context, memberID int64) ([]schedule.Assignment, error)
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]schedule.Assignment, error)
}

type Service struct {
	repo     Repository
	slots    SlotResolver
	groups   GroupsService
	schedule ScheduleService
	log      logger.Logger
}

func NewService(repo Repository, slotResolver SlotResolver, groupsService GroupsService, scheduleService ScheduleService, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		slots:    slotResolver,
		groups:   groupsService,
		schedule: scheduleService,
		log:      log,
	}
}

// CheckDuplicate reports whether a payment already exists for the slot
// identity. The resolved-id path matches on (member, group, slot) regardless of
// payment month; the composite path additionally restricts to the current
// payment month. A repository failure yields an inconclusive result instead of
// an error: duplicate prevention is a warning, not a hard constraint.
func (s *Service) CheckDuplicate(ctx context.Context, memberID, groupID int64, ref slots.Ref, paymentMonth month.Month) CheckResult {
	if slotID, ok := ref.SlotID(); ok {
		count, err := s.repo.CountBySlot(ctx, memberID, groupID, slotID)
		if err != nil {
			s.log.Warn("payments: duplicate check inconclusive", "err", err, "member_id", memberID, "group_id", groupID, "slot_id", slotID)
			return Inconclusive()
		}
		return Confirmed(count > 0)
	}

	refGroupID, refMemberID, monthDate, _ := ref.Composite()
	if refGroupID != 0 {
		groupID = refGroupID
	}
	if refMemberID != 0 {
		memberID = refMemberID
	}

	count, err := s.repo.CountByComposite(ctx, memberID, groupID, monthDate, paymentMonth)
	if err != nil {
		s.log.Warn("payments: duplicate check inconclusive", "err", err, "member_id", memberID, "group_id", groupID, "month", monthDate)
		return Inconclusive()
	}
	return Confirmed(count > 0)
}

// Create records a single payment. The slot reference is resolved (materializing
// the slot row when needed) and a confirmed duplicate blocks the save. An
// inconclusive duplicate check fails open.
func (s *Service) Create(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	group, err := s.groups.Get(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.ActiveForMonth(input.PaymentMonth) {
		return nil, ErrGroupInactive
	}

	check := s.CheckDuplicate(ctx, input.MemberID, input.GroupID, input.Slot, input.PaymentMonth)
	if check.Known && check.Duplicate {
		return nil, ErrDuplicatePayment
	}
	if !check.Known {
		s.log.Warn("payments: proceeding without conclusive duplicate check", "member_id", input.MemberID, "group_id", input.GroupID)
	}

	slot, isNew, err := s.slots.ResolveRef(ctx, input.MemberID, input.Slot)
	if err != nil {
		return nil, fmt.Errorf("resolve slot: %w", err)
	}
	if isNew {
		s.log.Info("payments: materialized payment slot", "slot_id", slot.ID, "group_id", slot.GroupID, "member_id", slot.MemberID, "month", slot.MonthDate)
	}

	payment := Payment{
		MemberID:        input.MemberID,
		GroupID:         input.GroupID,
		SlotID:          slot.ID,
		PaymentDate:     input.PaymentDate,
		PaymentMonth:    input.PaymentMonth,
		Amount:          input.Amount,
		PaymentMethod:   input.PaymentMethod,
		SenderBankID:    input.SenderBankID,
		ReceiverBankID:  input.ReceiverBankID,
		Status:          input.Status,
		Notes:           input.Notes,
		FineAmount:      input.FineAmount,
		IsLatePayment:   input.IsLatePayment,
		PaymentDeadline: input.PaymentDeadline,
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return &payment, nil
}

func (s *Service) Update(ctx context.Context, input UpdatePaymentInput) (*Payment, error) {
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("invalid payment method %q", input.PaymentMethod)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", input.Status)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if err := validateBanks(input.Status, input.PaymentMethod, input.SenderBankID, input.ReceiverBankID); err != nil {
		return nil, err
	}

	payment, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	payment.PaymentDate = input.PaymentDate
	payment.Amount = input.Amount
	payment.PaymentMethod = input.PaymentMethod
	payment.SenderBankID = input.SenderBankID
	payment.ReceiverBankID = input.ReceiverBankID
	payment.Status = input.Status
	payment.Notes = input.Notes
	payment.FineAmount = input.FineAmount
	payment.IsLatePayment = input.IsLatePayment
	payment.PaymentDeadline = input.PaymentDeadline
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *Service) UpdateStatus(ctx context.Context, paymentID int64, status Status) (*Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *Service) Get(ctx context.Context, paymentID int64) (*Payment, error) {
	return s.repo.GetByID(ctx, paymentID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Payment, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, paymentID int64) error {
	deleted, err := s.repo.Delete(ctx, paymentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentNotFound
	}
	return nil
}

// OpenSlots lists a member's assigned months in a group that have no payment in
// the given payment month, each rendered as a selectable form value.
func (s *Service) OpenSlots(ctx context.Context, groupID, memberID int64, paymentMonth month.Month) ([]Combination, error) {
	combos, err := s.Combinations(ctx, memberID, paymentMonth)
	if err != nil {
		return nil, err
	}

	open := make([]Combination, 0, len(combos))
	for _, combo := range combos {
		if combo.GroupID != groupID {
			continue
		}
		if combo.AlreadyPaid {
			continue
		}
		open = append(open, combo)
	}
	return open, nil
}

// Combinations returns every (active group, assigned month) pairing for the
// member, flagging those that already have a payment in the current payment
// month so the multi-group form can disable them.
func (s *Service) Combinations(ctx context.Context, memberID int64, paymentMonth month.Month) ([]Combination, error) {
	assignments, err := s.schedule.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []Combination{}, nil
	}

	activeGroups, err := s.groups.ListActiveForMonth(ctx, paymentMonth)
	if err != nil {
		return nil, err
	}
	groupsByID := make(map[int64]groups.Group, len(activeGroups))
	for _, group := range activeGroups {
		groupsByID[group.ID] = group
	}

	paidRows, err := s.repo.ListPaidSlots(ctx, memberID, paymentMonth)
	if err != nil {
		return nil, err
	}
	paidKeys := make(map[string]struct{}, len(paidRows))
	for _, row := range paidRows {
		paidKeys[slots.PaymentKey(row.MemberID, row.GroupID, row.SlotID)] = struct{}{}
		paidKeys[slots.SlotKey(row.GroupID, row.MemberID, row.MonthDate)] = struct{}{}
	}

	slotIDsByKey := make(map[string]int64)
	for groupID := range groupsByID {
		memberSlots, err := s.slots.ListByGroupAndMember(ctx, groupID, memberID)
		if err != nil {
			return nil, err
		}
		for _, slot := range memberSlots {
			slotIDsByKey[slots.SlotKey(slot.GroupID, slot.MemberID, slot.MonthDate)] = slot.ID
		}
	}

	combos := make([]Combination, 0, len(assignments))
	for _, assignment := range assignments {
		group, active := groupsByID[assignment.GroupID]
		if !active {
			continue
		}

		key := slots.SlotKey(assignment.GroupID, memberID, assignment.MonthDate)
		combo := Combination{
			GroupID:   assignment.GroupID,
			GroupName: group.Name,
			MemberID:  memberID,
			MonthDate: assignment.MonthDate,
			Amount:    group.MonthlyAmount,
			FormValue: slots.FormValue(assignment.GroupID, memberID, assignment.MonthDate),
		}

		if slotID, ok := slotIDsByKey[key]; ok {
			combo.SlotID = &slotID
			if _, paid := paidKeys[slots.PaymentKey(memberID, assignment.GroupID, slotID)]; paid {
				combo.AlreadyPaid = true
			}
		}
		if _, paid := paidKeys[key]; paid {
			combo.AlreadyPaid = true
		}

		combos = append(combos, combo)
	}

	return combos, nil
}

func validateCreate(input CreatePaymentInput) error {
	if input.MemberID == 0 {
		return fmt.Errorf("member is required")
	}
	if input.GroupID == 0 {
		return fmt.Errorf("group is required")
	}
	if input.PaymentDate.IsZero() {
		return fmt.Errorf("payment date is required")
	}
	if input.PaymentMonth.IsZero() {
		return fmt.Errorf("payment month is required")
	}
	if !input.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !input.PaymentMethod.Valid() {
		return fmt.Errorf("invalid payment method %q", input.PaymentMethod)
	}
	if !input.Status.Valid() {
		return fmt.Errorf("invalid status %q", input.Status)
	}
	return validateBanks(input.Status, input.PaymentMethod, input.SenderBankID, input.ReceiverBankID)
}

func validateBanks(status Status, method Method, senderBankID, receiverBankID *int64) error {
	if status == StatusSettled || method != MethodBankTransfer {
		return nil
	}
	if senderBankID == nil || receiverBankID == nil {
		return ErrBankRequired
	}
	return nil
}
