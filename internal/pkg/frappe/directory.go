package frappe

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
)

// Directory implements auth.EmployeeDirectory over the Frappe Employee
// doctype. App passwords are stored as bcrypt hashes in a plain Data field;
// hashing and comparison happen here so the backend never sees plaintext.
type Directory struct {
	client *Client
}

func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

type employeeDoc struct {
	Name                 string `json:"name"`
	EmployeeName         string `json:"employee_name"`
	UserID               string `json:"user_id"`
	AppID                string `json:"app_id"`
	AllowESS             int    `json:"allow_ess"`
	EssRole              string `json:"ess_role"`
	DeviceID             string `json:"device_id"`
	DeviceModel          string `json:"device_model"`
	DeviceBrand          string `json:"device_brand"`
	DeviceRegisteredOn   string `json:"device_registered_on"`
	RequirePasswordReset int    `json:"require_password_reset"`
}

var employeeFields = []string{
	"name", "employee_name", "user_id", "app_id", "allow_ess", "ess_role",
	"device_id", "device_model", "device_brand", "device_registered_on",
	"require_password_reset",
}

func (d *Directory) toAccount(doc employeeDoc) (auth.EmployeeAccount, error) {
	acct := auth.EmployeeAccount{
		EmployeeID:           doc.Name,
		EmployeeName:         doc.EmployeeName,
		UserID:               doc.UserID,
		AppID:                doc.AppID,
		AllowESS:             doc.AllowESS == 1,
		Role:                 doc.EssRole,
		DeviceID:             doc.DeviceID,
		DeviceModel:          doc.DeviceModel,
		DeviceBrand:          doc.DeviceBrand,
		RequirePasswordReset: doc.RequirePasswordReset == 1,
	}
	if doc.DeviceRegisteredOn != "" {
		registered, err := d.client.parseDatetime(doc.DeviceRegisteredOn)
		if err != nil {
			return auth.EmployeeAccount{}, fmt.Errorf("employee %s: %w", doc.Name, err)
		}
		acct.DeviceRegisteredOn = &registered
	}
	return acct, nil
}

// GetByAppID implements auth.EmployeeDirectory.
func (d *Directory) GetByAppID(ctx context.Context, appID string) (auth.EmployeeAccount, error) {
	var docs []employeeDoc
	err := d.client.getList(ctx, "Employee", listOptions{
		Filters:   [][]interface{}{{"app_id", "=", appID}},
		Fields:    employeeFields,
		LimitPage: 1,
	}, &docs)
	if err != nil {
		return auth.EmployeeAccount{}, fmt.Errorf("lookup employee by app id: %w", err)
	}
	if len(docs) == 0 {
		return auth.EmployeeAccount{}, auth.ErrEmployeeNotFound
	}
	return d.toAccount(docs[0])
}

// GetByEmployeeID implements auth.EmployeeDirectory.
func (d *Directory) GetByEmployeeID(ctx context.Context, employeeID string) (auth.EmployeeAccount, error) {
	var docs []employeeDoc
	err := d.client.getList(ctx, "Employee", listOptions{
		Filters:   [][]interface{}{{"name", "=", employeeID}},
		Fields:    employeeFields,
		LimitPage: 1,
	}, &docs)
	if err != nil {
		return auth.EmployeeAccount{}, fmt.Errorf("lookup employee: %w", err)
	}
	if len(docs) == 0 {
		return auth.EmployeeAccount{}, auth.ErrEmployeeNotFound
	}
	return d.toAccount(docs[0])
}

// VerifyAppPassword implements auth.EmployeeDirectory.
func (d *Directory) VerifyAppPassword(ctx context.Context, employeeID string, password string) (bool, error) {
	var docs []struct {
		AppPasswordHash string `json:"app_password_hash"`
	}
	err := d.client.getList(ctx, "Employee", listOptions{
		Filters:   [][]interface{}{{"name", "=", employeeID}},
		Fields:    []string{"app_password_hash"},
		LimitPage: 1,
	}, &docs)
	if err != nil {
		return false, fmt.Errorf("fetch app password hash: %w", err)
	}
	if len(docs) == 0 {
		return false, auth.ErrEmployeeNotFound
	}
	if docs[0].AppPasswordHash == "" {
		return false, auth.ErrPasswordNotSet
	}

	err = bcrypt.CompareHashAndPassword([]byte(docs[0].AppPasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("compare app password: %w", err)
	}
	return true, nil
}

// BindDevice implements auth.EmployeeDirectory.
func (d *Directory) BindDevice(ctx context.Context, employeeID string, device auth.DeviceInfo) error {
	err := d.client.setValue(ctx, "Employee", employeeID, map[string]interface{}{
		"device_id":            device.DeviceID,
		"device_model":         device.DeviceModel,
		"device_brand":         device.DeviceBrand,
		"device_registered_on": d.client.formatDatetime(nowIn(d.client.Location())),
	})
	if err != nil {
		return fmt.Errorf("bind device: %w", err)
	}
	return nil
}

// ClearDevice implements auth.EmployeeDirectory.
func (d *Directory) ClearDevice(ctx context.Context, employeeID string) error {
	err := d.client.setValue(ctx, "Employee", employeeID, map[string]interface{}{
		"device_id":            nil,
		"device_model":         nil,
		"device_brand":         nil,
		"device_registered_on": nil,
	})
	if err != nil {
		return fmt.Errorf("clear device: %w", err)
	}
	return nil
}

// SetAppPassword implements auth.EmployeeDirectory.
func (d *Directory) SetAppPassword(ctx context.Context, employeeID string, password string, clearResetFlag bool) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash app password: %w", err)
	}

	values := map[string]interface{}{
		"app_password_hash": string(hashed),
	}
	if clearResetFlag {
		values["require_password_reset"] = 0
	}
	if err := d.client.setValue(ctx, "Employee", employeeID, values); err != nil {
		return fmt.Errorf("set app password: %w", err)
	}
	return nil
}
