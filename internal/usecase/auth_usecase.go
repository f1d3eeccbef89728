package usecase

import (
	"context"

	"clinic-records-api/internal/converter"
	"clinic-records-api/internal/delivery/dto"
	"clinic-records-api/internal/domain/entity"
	"clinic-records-api/internal/domain/repository"
	"clinic-records-api/internal/policy"
	"clinic-records-api/internal/service"
	"clinic-records-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.CurrentUserResponse, error)
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	roleRepo         repository.RoleRepository
	departmentRepo   repository.DepartmentRepository
	doctorRepo       repository.DoctorRepository
	relationshipRepo repository.DoctorPatientRelationshipRepository
	recordRepo       repository.PatientRecordRepository
	resolver         *policy.Resolver
	jwtService       *jwt.JWTService
	sessionService   *service.SessionService
	auditService     service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	relationshipRepo repository.DoctorPatientRelationshipRepository,
	recordRepo repository.PatientRecordRepository,
	resolver *policy.Resolver,
	jwtService *jwt.JWTService,
	sessionService *service.SessionService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		departmentRepo:   departmentRepo,
		doctorRepo:       doctorRepo,
		relationshipRepo: relationshipRepo,
		recordRepo:       recordRepo,
		resolver:         resolver,
		jwtService:       jwtService,
		sessionService:   sessionService,
		auditService:     auditService,
	}
}

// Register creates the user and its role-specific rows in one transaction.
// A patient also gets a relationship to the chosen doctor and a placeholder record.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByName(tx, req.Group)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrInvalidGroup
	}

	if err := ensureUsernameFree(tx, u.userRepo, req.Username); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to check username: %+v", err)
		}
		return nil, err
	}

	var department *entity.Department
	var doctor *entity.Doctor

	switch role.ID {
	case entity.RoleIDDoctors:
		if req.Department == nil {
			return nil, ErrDepartmentRequired
		}
		department, err = u.departmentRepo.FindByID(tx, *req.Department)
		if err != nil {
			u.log.Warnf("Failed to find department: %+v", err)
			return nil, err
		}
		if department == nil {
			return nil, ErrUnknownDepartment
		}
	case entity.RoleIDPatients:
		if req.Doctor == nil {
			return nil, ErrDoctorRequired
		}
		doctor, err = u.doctorRepo.FindByID(tx, *req.Doctor)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrUnknownDoctor
		}
	default:
		return nil, ErrInvalidGroup
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		RoleID:   role.ID,
	}
	if err := saveUser(tx, u.userRepo, user, true); err != nil {
		if err != ErrUsernameTaken {
			u.log.Warnf("Failed to create user: %+v", err)
		}
		return nil, err
	}

	if department != nil {
		if err := u.doctorRepo.Create(tx, &entity.Doctor{UserID: user.ID, DepartmentID: department.ID}); err != nil {
			u.log.Warnf("Failed to create doctor: %+v", err)
			return nil, err
		}
	}

	if doctor != nil {
		if err := admitPatient(tx, u.log, u.relationshipRepo, u.recordRepo, user, doctor, registrationTexts); err != nil {
			return nil, err
		}
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.audit(ctx, user.ID, entity.AuditActionUserLogin)

	return tokens, nil
}

// Logout revokes the refresh token together with the access token used for the call.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error {
	claims, err := u.jwtService.ValidateToken(req.Refresh)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
		return ErrInvalidToken
	}

	if err := u.sessionService.RevokePair(ctx, userID, accessTokenID, claims.TokenID); err != nil {
		return err
	}

	u.audit(ctx, userID, entity.AuditActionUserLogout)

	return nil
}

// RefreshToken exchanges an active refresh token for a new pair. The old refresh token is revoked.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.Refresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	if err := u.sessionService.RevokeRefreshToken(ctx, claims.UserID, claims.TokenID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.CurrentUserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	identity, err := u.resolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	return converter.IdentityToCurrentUser(user, identity), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.sessionService.Store(ctx, user.ID, accessTokenID, u.jwtService.GetAccessExpiry(), refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Access:    accessToken,
		Refresh:   refreshToken,
		ExpiresIn: int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// audit records a session event in its own transaction. Failures are only logged.
func (u *authUsecase) audit(ctx context.Context, userID uuid.UUID, action string) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.auditService.LogCreate(ctx, tx, &userID, action, "session", userID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
	}
}
