package constants

import "fmt"

// ==========================
// ✅ Role Names
// ==========================
const (
	RoleUser          = "user"            // read-only access to tenant documents
	RoleDocumentOwner = "document_owner"  // PIC of a document, may start renewals
	RoleCompliance    = "compliance"      // compliance officer per company
	RoleMasterManager = "master_manager"  // boleh cancel tracker entries
	RoleSystemManager = "system_manager"  // global admin
)

// Template pesan error role
const (
	ErrOnlyComplianceCanAccess = "❌ Hanya compliance, master manager, atau system manager yang boleh mengakses fitur %s."
	ErrOnlyManagersCanAccess   = "❌ Hanya master manager atau system manager yang boleh mengakses fitur %s."
	ErrOnlyMasterCanCancel     = "❌ Hanya master manager yang boleh membatalkan %s."
	ErrOnlySystemCanAccess     = "❌ Hanya system manager yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorCompliance(feature string) string {
	return fmt.Sprintf(ErrOnlyComplianceCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorMasterCancel(feature string) string {
	return fmt.Sprintf(ErrOnlyMasterCanCancel, feature)
}

func RoleErrorSystem(feature string) string {
	return fmt.Sprintf(ErrOnlySystemCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleDocumentOwner,
		RoleCompliance,
		RoleMasterManager,
		RoleSystemManager,
	}

	// Document owner boleh kelola dokumennya (termasuk mulai renewal);
	// cancel tetap dicek terpisah lewat CancelRoles di service.
	OwnerAndAbove = []string{
		RoleDocumentOwner,
		RoleCompliance,
		RoleMasterManager,
		RoleSystemManager,
	}

	ComplianceAndAbove = []string{
		RoleCompliance,
		RoleMasterManager,
		RoleSystemManager,
	}

	ManagerAndAbove = []string{
		RoleMasterManager,
		RoleSystemManager,
	}

	// Roles yang boleh meng-cancel dokumen submitted (lihat revoke_or_cancel)
	CancelRoles = []string{
		RoleMasterManager,
		RoleSystemManager,
	}
)
