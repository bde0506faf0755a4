package escrow

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/orm"
	amino "github.com/tendermint/go-amino"
)

// DealState is the position of a deal in its lifecycle.
type DealState int32

const (
	// DealCreated deals wait for the sender's deposit.
	DealCreated DealState = 1
	// DealFunded deals hold the amount and accept votes.
	DealFunded DealState = 2
	// DealSettled deals paid out their balance and are closed.
	DealSettled DealState = 3
)

var dealStateNames = map[DealState]string{
	DealCreated: "created",
	DealFunded:  "funded",
	DealSettled: "settled",
}

func (s DealState) String() string {
	if name, ok := dealStateNames[s]; ok {
		return name
	}
	return "invalid"
}

// VoteOption is the decision of a single participant.
type VoteOption int32

const (
	VoteUnset   VoteOption = 0
	VoteRelease VoteOption = 1
	VoteRefund  VoteOption = 2
)

// Weight returns the contribution of this vote to the tally: +1 for
// release, -1 for refund and 0 when no vote was cast.
func (v VoteOption) Weight() int {
	switch v {
	case VoteRelease:
		return 1
	case VoteRefund:
		return -1
	default:
		return 0
	}
}

func (v VoteOption) String() string {
	switch v {
	case VoteUnset:
		return "unset"
	case VoteRelease:
		return "release"
	case VoteRefund:
		return "refund"
	default:
		return "invalid"
	}
}

// Validate returns an error unless this is a known option.
func (v VoteOption) Validate() error {
	switch v {
	case VoteUnset, VoteRelease, VoteRefund:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown vote option %d", v)
}

// Votes holds one vote slot per participant role.
type Votes struct {
	Sender   VoteOption `json:"sender"`
	Receiver VoteOption `json:"receiver"`
	Arbiter  VoteOption `json:"arbiter"`
}

// Count returns how many participants voted for release and how many for
// refund.
func (v Votes) Count() (release, refund int) {
	for _, opt := range [...]VoteOption{v.Sender, v.Receiver, v.Arbiter} {
		switch opt {
		case VoteRelease:
			release++
		case VoteRefund:
			refund++
		}
	}
	return release, refund
}

// Decision returns the option chosen by at least two participants, or
// VoteUnset if there is no majority yet.
func (v Votes) Decision() VoteOption {
	release, refund := v.Count()
	switch {
	case release >= 2:
		return VoteRelease
	case refund >= 2:
		return VoteRefund
	}
	return VoteUnset
}

// Validate ensures every slot holds a known option.
func (v Votes) Validate() error {
	errs := errors.AppendField(nil, "Sender", v.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", v.Receiver.Validate())
	return errors.AppendField(errs, "Arbiter", v.Arbiter.Validate())
}

// Deal is a single escrow agreement.
type Deal struct {
	Metadata trust.Metadata `json:"metadata"`
	ID       uint64         `json:"id"`
	Sender   trust.Address  `json:"sender"`
	Receiver trust.Address  `json:"receiver"`
	Arbiter  trust.Address  `json:"arbiter"`
	// Amount is the exact value the sender must deposit.
	Amount coin.Coin `json:"amount"`
	// Balance is the value held by the deal account.
	Balance  coin.Coin `json:"balance"`
	State    DealState `json:"state"`
	Votes    Votes     `json:"votes"`
	Refunded bool      `json:"refunded"`
}

var _ orm.Model = (*Deal)(nil)

// Validate ensures the deal is consistent.
func (d *Deal) Validate() error {
	errs := errors.AppendField(nil, "Metadata", d.Metadata.Validate())
	if d.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Sender", d.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", d.Receiver.Validate())
	errs = errors.AppendField(errs, "Arbiter", d.Arbiter.Validate())
	if !d.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", d.Amount.Validate())
	}
	if !d.Balance.SameType(d.Amount) {
		errs = errors.AppendField(errs, "Balance", errors.Wrap(errors.ErrCurrency, "balance and amount currency differ"))
	}
	switch d.State {
	case DealCreated, DealSettled:
		if !d.Balance.IsZero() {
			errs = errors.AppendField(errs, "Balance", errors.Wrapf(errors.ErrState, "%s deal holds funds", d.State))
		}
	case DealFunded:
		if !d.Balance.Equals(d.Amount) {
			errs = errors.AppendField(errs, "Balance", errors.Wrap(errors.ErrState, "funded deal must hold the amount"))
		}
	default:
		errs = errors.AppendField(errs, "State", errors.Wrapf(errors.ErrState, "unknown state %d", d.State))
	}
	if d.Refunded && d.State != DealSettled {
		errs = errors.AppendField(errs, "Refunded", errors.Wrap(errors.ErrState, "only settled deals are refunded"))
	}
	return errors.AppendField(errs, "Votes", d.Votes.Validate())
}

// Copy returns a deep copy of the deal.
func (d *Deal) Copy() orm.CloneableData {
	return &Deal{
		Metadata: d.Metadata,
		ID:       d.ID,
		Sender:   copyAddr(d.Sender),
		Receiver: copyAddr(d.Receiver),
		Arbiter:  copyAddr(d.Arbiter),
		Amount:   d.Amount,
		Balance:  d.Balance,
		State:    d.State,
		Votes:    d.Votes,
		Refunded: d.Refunded,
	}
}

func (d *Deal) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(d)
}

func (d *Deal) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, d)
}

// Closed returns true once the deal was settled.
func (d *Deal) Closed() bool {
	return d.State == DealSettled
}

// Address returns the account holding the deal balance.
func (d *Deal) Address() trust.Address {
	return DealAddress(d.ID)
}

// slot returns the first vote slot held by given address, in the sender,
// receiver, arbiter order. Nil is returned for an address that is not a
// participant.
func (d *Deal) slot(addr trust.Address) *VoteOption {
	switch {
	case d.Sender.Equals(addr):
		return &d.Votes.Sender
	case d.Receiver.Equals(addr):
		return &d.Votes.Receiver
	case d.Arbiter.Equals(addr):
		return &d.Votes.Arbiter
	}
	return nil
}

// VoteOf returns the vote weight of given address, 0 if the address did
// not vote or is not a participant.
func (d *Deal) VoteOf(addr trust.Address) int {
	if s := d.slot(addr); s != nil {
		return s.Weight()
	}
	return 0
}

func copyAddr(a trust.Address) trust.Address {
	if a == nil {
		return nil
	}
	return append(trust.Address(nil), a...)
}

// DealCondition returns the condition that owns the account of the deal with
// given ID. Nobody can sign for it, only this extension moves its funds.
func DealCondition(id uint64) trust.Condition {
	return trust.NewCondition("escrow", "deal", orm.EncodeSequence(id))
}

// DealAddress returns the address of the account holding the balance of
// the deal with given ID.
func DealAddress(id uint64) trust.Address {
	return DealCondition(id).Address()
}

// Role is the part an address plays in a deal. Roles are also the names of
// the deal indexes.
type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
	RoleArbiter  Role = "arbiter"
)

// Validate returns an error unless this is a known role.
func (r Role) Validate() error {
	switch r {
	case RoleSender, RoleReceiver, RoleArbiter:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown role %q", string(r))
}

const dealBucketName = "deal"

var dealSeq = orm.NewSequence(dealBucketName, "id")

// NewDealBucket returns a bucket keeping deals under their 8 byte big
// endian ID, indexed by each participant role.
func NewDealBucket() orm.ModelBucket {
	return orm.NewModelBucket(dealBucketName, &Deal{},
		orm.WithIDSequence(dealSeq),
		orm.WithIndex(string(RoleSender), roleIndexer(RoleSender), false),
		orm.WithIndex(string(RoleReceiver), roleIndexer(RoleReceiver), false),
		orm.WithIndex(string(RoleArbiter), roleIndexer(RoleArbiter), false),
	)
}

func roleIndexer(r Role) orm.Indexer {
	return func(obj orm.Object) ([]byte, error) {
		d, ok := obj.Value().(*Deal)
		if !ok {
			return nil, errors.WithType(errors.ErrModel, obj.Value())
		}
		switch r {
		case RoleSender:
			return d.Sender, nil
		case RoleReceiver:
			return d.Receiver, nil
		default:
			return d.Arbiter, nil
		}
	}
}

// Configuration of the escrow extension.
type Configuration struct {
	Metadata trust.Metadata `json:"metadata"`
	// Owner can update the configuration.
	Owner trust.Address `json:"owner"`
	// AllowVoteChange lets a participant replace its own vote while the
	// deal is open.
	AllowVoteChange bool `json:"allow_vote_change"`
}

// GetOwner returns the address that can update the configuration.
func (c *Configuration) GetOwner() trust.Address {
	return c.Owner
}

// Validate requires the metadata. The owner is optional, without it the
// configuration cannot be changed.
func (c *Configuration) Validate() error {
	errs := errors.AppendField(nil, "Metadata", c.Metadata.Validate())
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, c)
}
