package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/mailer"
	"github.com/asharbutt0314/foodexpress/middleware"
	"github.com/asharbutt0314/foodexpress/models"
	"github.com/asharbutt0314/foodexpress/otp"
	"github.com/asharbutt0314/foodexpress/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The same handlers serve both account kinds; the route group decides
// which population they operate on.

type SignupRequest struct {
	Username       string `json:"username" form:"username"`
	RestaurantName string `json:"restaurantName" form:"restaurantName"`
	Email          string `json:"email" form:"email" binding:"required,email"`
	Password       string `json:"password" form:"password" binding:"required,min=6"`
	Otp            string `json:"otp" form:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func findAccount(kind models.AccountKind, email string) (*models.Account, error) {
	var account models.Account
	err := config.DB.Where("kind = ? AND email = ?", kind, email).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// challengeOf adapts the persisted OTP fields to the verification machine.
func challengeOf(a *models.Account) *otp.Challenge {
	if !a.HasPendingOtp() {
		return nil
	}
	return &otp.Challenge{Code: *a.Otp, Expiry: *a.OtpExpiry}
}

func issueOtp(a *models.Account) string {
	ch := otp.Issue(time.Now())
	a.Otp = &ch.Code
	a.OtpExpiry = &ch.Expiry
	return ch.Code
}

func otpFailureMessage(err error) string {
	switch err {
	case otp.ErrNotRequested:
		return "OTP not requested"
	case otp.ErrExpired:
		return "OTP expired"
	default:
		return "Invalid OTP"
	}
}

func mailBrand(kind models.AccountKind) string {
	if kind == models.KindRestaurant {
		return "FoodExpress Admin"
	}
	return "FoodExpress"
}

// sendOtpMail delivers the code. Auth flows are unusable without the
// code reaching the user, so the send is awaited and errors surface.
func sendOtpMail(kind models.AccountKind, email, code string) error {
	return mailer.Send(email, "Your OTP Code", mailer.OtpHTML(code, mailBrand(kind)))
}

// Signup is the two-phase registration entry point. Without an OTP in
// the request it creates the account unverified and mails a code; with
// one it verifies the code and finalizes the profile in the same write.
func Signup(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		imagePath := ""
		if kind == models.KindRestaurant {
			path, err := storage.SaveUpload(c, "restaurantImage")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store restaurant image"})
				return
			}
			imagePath = path
		}

		if req.Otp == "" {
			signupRequestPhase(c, kind, req, imagePath)
			return
		}
		signupConfirmPhase(c, kind, req, imagePath)
	}
}

func signupRequestPhase(c *gin.Context, kind models.AccountKind, req SignupRequest, imagePath string) {
	if _, err := findAccount(kind, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during signup"})
		return
	}

	account := models.Account{
		Kind:            kind,
		Username:        req.Username,
		RestaurantName:  req.RestaurantName,
		RestaurantImage: imagePath,
		Email:           req.Email,
		PasswordHash:    string(hash),
		IsVerified:      false,
	}
	code := issueOtp(&account)

	if err := config.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during signup"})
		return
	}

	if err := sendOtpMail(kind, req.Email, code); err != nil {
		log.Printf("signup otp mail to %s failed: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to email. Please verify to complete signup."})
}

func signupConfirmPhase(c *gin.Context, kind models.AccountKind, req SignupRequest, imagePath string) {
	account, err := findAccount(kind, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": kind.Label() + " not found. Please request OTP first."})
		return
	}

	if err := otp.Verify(challengeOf(account), req.Otp, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": otpFailureMessage(err)})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during signup"})
		return
	}

	// Finalize profile fields atomically with the verification flip.
	account.Username = req.Username
	account.PasswordHash = string(hash)
	if kind == models.KindRestaurant {
		account.RestaurantName = req.RestaurantName
		if imagePath != "" {
			account.RestaurantImage = imagePath
		}
	}
	account.IsVerified = true
	account.ClearOtp()

	if err := config.DB.Save(account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during signup"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Signup successful. You can now login.",
		kind.JSONKey(): account,
	})
}

// Login authenticates a verified account and returns a JWT
func Login(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		account, err := findAccount(kind, req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": kind.Label() + " not found"})
			return
		}

		if !account.IsVerified {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": kind.Label() + " not verified. Please verify your account before logging in."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect password"})
			return
		}

		token, err := middleware.GenerateToken(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Login successful",
			kind.JSONKey(): account,
			"token":        token,
		})
	}
}

// Logout is stateless: the client discards its token.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful. Please clear your token and redirect to login/signup pages.",
	})
}

func sendOtpHandler(kind models.AccountKind, successMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		account, err := findAccount(kind, req.Email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": kind.Label() + " not found"})
			return
		}

		code := issueOtp(account)
		if err := config.DB.Save(account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
			return
		}

		if err := sendOtpMail(kind, req.Email, code); err != nil {
			log.Printf("otp mail to %s failed: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": successMessage})
	}
}

// SendOtp issues a fresh code and emails it. Any prior code is replaced.
func SendOtp(kind models.AccountKind) gin.HandlerFunc {
	return sendOtpHandler(kind, "OTP sent to email")
}

// ResendOtp is SendOtp under the route older clients call after an
// expiry failure.
func ResendOtp(kind models.AccountKind) gin.HandlerFunc {
	return sendOtpHandler(kind, "OTP resent to email")
}

func verifyOtpHandler(kind models.AccountKind, successMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		account, err := findAccount(kind, req.Email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": kind.Label() + " not found"})
			return
		}

		if err := otp.Verify(challengeOf(account), req.Otp, time.Now()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": otpFailureMessage(err)})
			return
		}

		// One-shot: the code is consumed on success, left intact on failure.
		account.ClearOtp()
		account.IsVerified = true
		if err := config.DB.Save(account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": successMessage})
	}
}

// VerifyOtp consumes a pending code and marks the account verified.
func VerifyOtp(kind models.AccountKind) gin.HandlerFunc {
	return verifyOtpHandler(kind, "OTP verified successfully")
}

// SignupOtpVerify completes the signup flow for clients that verify in
// a separate call instead of resubmitting the signup form.
func SignupOtpVerify(kind models.AccountKind) gin.HandlerFunc {
	return verifyOtpHandler(kind, "Signup OTP verified successfully")
}

// ResetPassword changes the password after an OTP check. Verification
// state is untouched; only a successful OTP check flips it, and a
// password reset is not that.
func ResetPassword(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		account, err := findAccount(kind, req.Email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": kind.Label() + " not found"})
			return
		}

		if err := otp.Verify(challengeOf(account), req.Otp, time.Now()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": otpFailureMessage(err)})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
			return
		}

		account.PasswordHash = string(hash)
		account.ClearOtp()
		if err := config.DB.Save(account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
	}
}

type UpdateProfileRequest struct {
	AccountID      string `json:"userId" form:"userId"`
	Username       string `json:"username" form:"username"`
	Password       string `json:"password" form:"password"`
	RestaurantName string `json:"restaurantName" form:"restaurantName"`
}

// UpdateProfile mutates username/password (and restaurant fields for
// owners). Submitting the exact current credentials is rejected so the
// operation stays observably idempotent.
func UpdateProfile(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if req.AccountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": kind.Label() + " ID is required"})
			return
		}

		var account models.Account
		if err := config.DB.Where("kind = ? AND id = ?", kind, req.AccountID).First(&account).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": kind.Label() + " not found"})
			return
		}

		imagePath := ""
		if kind == models.KindRestaurant {
			path, err := storage.SaveUpload(c, "restaurantImage")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store restaurant image"})
				return
			}
			imagePath = path
		}

		sameUsername := req.Username == "" || req.Username == account.Username
		samePassword := true
		if req.Password != "" {
			samePassword = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) == nil
		}
		sameRestaurant := req.RestaurantName == "" || req.RestaurantName == account.RestaurantName

		if sameUsername && samePassword && sameRestaurant && imagePath == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Update your profile can't update the same credentials"})
			return
		}

		if req.Username != "" && !sameUsername {
			account.Username = req.Username
		}
		if req.Password != "" && !samePassword {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during profile update"})
				return
			}
			account.PasswordHash = string(hash)
		}
		if kind == models.KindRestaurant {
			if req.RestaurantName != "" && !sameRestaurant {
				account.RestaurantName = req.RestaurantName
			}
			if imagePath != "" {
				account.RestaurantImage = imagePath
			}
		}

		if err := config.DB.Save(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during profile update"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Profile updated successfully",
			kind.JSONKey(): account,
		})
	}
}

// ListAccounts returns every account of the given kind.
func ListAccounts(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var accounts []models.Account
		if err := config.DB.Where("kind = ?", kind).Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching " + kind.JSONKey() + "s"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":            true,
			kind.JSONKey() + "s": accounts,
		})
	}
}

// ListRestaurants is the public directory of verified restaurants.
func ListRestaurants(c *gin.Context) {
	var owners []models.Account
	if err := config.DB.Where("kind = ? AND is_verified = ?", models.KindRestaurant, true).Find(&owners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching restaurants"})
		return
	}
	restaurants := make([]gin.H, 0, len(owners))
	for _, o := range owners {
		restaurants = append(restaurants, gin.H{
			"id":              o.ID,
			"restaurantName":  o.RestaurantName,
			"restaurantImage": o.RestaurantImage,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurants": restaurants})
}

// accountByID resolves an account or reports nil. Used by the order
// views, which tolerate dangling references.
func accountByID(kind models.AccountKind, id string) *models.Account {
	var account models.Account
	if err := config.DB.Where("kind = ? AND id = ?", kind, id).First(&account).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("account lookup %s/%s failed: %v", kind, id, err)
		}
		return nil
	}
	return &account
}
