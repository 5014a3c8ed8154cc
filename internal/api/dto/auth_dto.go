package dto

// LoginRequest 登录请求，Login 可以是用户名或邮箱
type LoginRequest struct {
	Login    string `json:"login" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64,alphanum"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	FullName string  `json:"full_name" binding:"required,min=1,max=255"`
	Password string  `json:"password" binding:"required,min=6,max=255"`
	Avatar   *string `json:"avatar" binding:"omitempty,url,max=500"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}
