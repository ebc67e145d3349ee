package models

import "encoding/json"

// SharedExtension lists the accounts and groups an entity is shared with.
// It may be attached to an Account, a Collection or an Item.
type SharedExtension struct {
	Accessors []SharingAccessor `json:"accessors"`
}

func (*SharedExtension) ExtensionName() ExtensionName { return ExtensionNameShared }

type sharedExtensionAlias SharedExtension

func (s SharedExtension) MarshalJSON() ([]byte, error) {
	if s.Accessors == nil {
		s.Accessors = []SharingAccessor{}
	}
	return marshalTagged("name", string(ExtensionNameShared), sharedExtensionAlias(s))
}

func (s *SharedExtension) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "accessors"); err != nil {
		return err
	}
	var alias sharedExtensionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = SharedExtension(alias)
	return nil
}

// EffectiveAccessors returns the accessors an importer should honour:
// unknown permissions are discarded, and accessors of an unknown type or
// left without any known permission are dropped entirely.
func (s *SharedExtension) EffectiveAccessors() []SharingAccessor {
	out := make([]SharingAccessor, 0, len(s.Accessors))
	for _, acc := range s.Accessors {
		if !acc.Type.IsKnown() {
			continue
		}
		perms := acc.KnownPermissions()
		if len(perms) == 0 {
			continue
		}
		acc.Permissions = perms
		out = append(out, acc)
	}
	return out
}

// SharingAccessor is a user or group an entity is shared with.
type SharingAccessor struct {
	// Type is the kind of accessor.
	Type SharingAccessorType `json:"type"`

	// AccountID identifies the user or group within the exporting provider.
	AccountID B64Url `json:"accountId"`

	// Name is the display name of the accessor.
	Name string `json:"name"`

	// Permissions granted to the accessor.
	Permissions []SharingAccessorPermission `json:"permissions"`
}

type sharingAccessorAlias SharingAccessor

func (a *SharingAccessor) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "type", "accountId", "name", "permissions"); err != nil {
		return err
	}
	var alias sharingAccessorAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*a = SharingAccessor(alias)
	return nil
}

// KnownPermissions returns the permissions of a that this package recognises.
func (a SharingAccessor) KnownPermissions() []SharingAccessorPermission {
	var perms []SharingAccessorPermission
	for _, p := range a.Permissions {
		if p.IsKnown() {
			perms = append(perms, p)
		}
	}
	return perms
}

// SharingAccessorType is the kind of a sharing accessor.
type SharingAccessorType string

const (
	SharingAccessorTypeUser  SharingAccessorType = "user"
	SharingAccessorTypeGroup SharingAccessorType = "group"
)

func (t SharingAccessorType) IsKnown() bool {
	return t == SharingAccessorTypeUser || t == SharingAccessorTypeGroup
}

// SharingAccessorPermission is a single permission granted to an accessor.
type SharingAccessorPermission string

const (
	SharingPermissionRead       SharingAccessorPermission = "read"
	SharingPermissionReadSecret SharingAccessorPermission = "readSecret"
	SharingPermissionUpdate     SharingAccessorPermission = "update"
	SharingPermissionCreate     SharingAccessorPermission = "create"
	SharingPermissionDelete     SharingAccessorPermission = "delete"
	SharingPermissionShare      SharingAccessorPermission = "share"
	SharingPermissionManage     SharingAccessorPermission = "manage"
)

func (p SharingAccessorPermission) IsKnown() bool {
	switch p {
	case SharingPermissionRead, SharingPermissionReadSecret, SharingPermissionUpdate,
		SharingPermissionCreate, SharingPermissionDelete, SharingPermissionShare,
		SharingPermissionManage:
		return true
	}
	return false
}
