package user

type UpdateRoleDTO struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type RemoveUserDTO struct {
	UserID string `json:"userId" binding:"required"`
	Reason string `json:"reason"`
}

type ApproveUserDTO struct {
	UserID string `json:"userId" binding:"required"`
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}
