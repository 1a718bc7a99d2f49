package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	appcustomer "github.com/retailops/retail_crm/src/internal/application/customer"
	appfollowup "github.com/retailops/retail_crm/src/internal/application/followup"
	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/infrastructure/config"
	"github.com/retailops/retail_crm/src/internal/infrastructure/persistence"
	persistencecustomer "github.com/retailops/retail_crm/src/internal/infrastructure/persistence/customer"
	persistencefollowup "github.com/retailops/retail_crm/src/internal/infrastructure/persistence/followup"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// app 持有已組裝的 Use Case 與設定（每次命令執行前構建）
type app struct {
	settings config.SystemSettings

	registerCustomer *appcustomer.RegisterCustomerUseCase
	grantPoints      *appcustomer.GrantPointsUseCase
	deductPoints     *appcustomer.DeductPointsUseCase
	issueVoucher     *appcustomer.IssueVoucherUseCase
	recordPurchase   *appcustomer.RecordPurchaseUseCase
	getProfile       *appcustomer.GetCustomerProfileUseCase
	createTask       *appfollowup.CreateTaskUseCase
	completeTask     *appfollowup.CompleteTaskUseCase
	listPendingTasks *appfollowup.ListPendingTasksUseCase
}

// newApp 組裝依賴（資料庫 → 倉儲 → Use Case）
func newApp(dbPath, settingsPath string) (*app, error) {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	db, err := persistence.OpenDatabase(dbPath)
	if err != nil {
		return nil, err
	}

	customerRepo := persistencecustomer.NewCustomerRepository(db)
	taskRepo := persistencefollowup.NewTaskRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)

	return &app{
		settings:         settings,
		registerCustomer: appcustomer.NewRegisterCustomerUseCase(customerRepo, txManager),
		grantPoints:      appcustomer.NewGrantPointsUseCase(customerRepo, txManager),
		deductPoints:     appcustomer.NewDeductPointsUseCase(customerRepo, txManager),
		issueVoucher:     appcustomer.NewIssueVoucherUseCase(customerRepo, txManager),
		recordPurchase:   appcustomer.NewRecordPurchaseUseCase(customerRepo, txManager),
		getProfile:       appcustomer.NewGetCustomerProfileUseCase(customerRepo),
		createTask:       appfollowup.NewCreateTaskUseCase(taskRepo, customerRepo, txManager),
		completeTask:     appfollowup.NewCompleteTaskUseCase(taskRepo, txManager),
		listPendingTasks: appfollowup.NewListPendingTasksUseCase(taskRepo),
	}, nil
}

func main() {
	var dbPath string
	var settingsPath string

	root := &cobra.Command{
		Use:     "crmctl",
		Short:   "Retail CRM loyalty console",
		Long:    "crmctl manages customer loyalty accounts: registration, points, vouchers and follow-up tasks.",
		Version: version,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "crm.db", "SQLite database file")
	root.PersistentFlags().StringVar(&settingsPath, "settings", "", "YAML settings file (point_value / earn_rate)")

	// register
	var registerFlags struct {
		name, phone, email, governorate, customerType string
	}
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.registerCustomer.Execute(appcustomer.RegisterCustomerCommand{
				Name:         registerFlags.name,
				Phone:        registerFlags.phone,
				Email:        registerFlags.email,
				Governorate:  registerFlags.governorate,
				CustomerType: registerFlags.customerType,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			fmt.Printf("customer_id: %s\n", result.CustomerID)
			return nil
		},
	}
	f := registerCmd.Flags()
	f.StringVar(&registerFlags.name, "name", "", "Customer name (required)")
	f.StringVar(&registerFlags.phone, "phone", "", "Phone number, 11 digits starting with 01 (required)")
	f.StringVar(&registerFlags.email, "email", "", "Email address")
	f.StringVar(&registerFlags.governorate, "governorate", "", "Governorate (required)")
	f.StringVar(&registerFlags.customerType, "type", "Normal", "Customer type: Normal or Corporate")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("phone")
	_ = registerCmd.MarkFlagRequired("governorate")

	// grant
	var grantFlags struct {
		customerID, reason string
		amount             int
	}
	grantCmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant loyalty points to a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.grantPoints.Execute(appcustomer.GrantPointsCommand{
				CustomerID: grantFlags.customerID,
				Amount:     grantFlags.amount,
				Reason:     grantFlags.reason,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			printBalance(result.Points, result.TotalPointsEarned, result.TotalPointsUsed)
			return nil
		},
	}
	f = grantCmd.Flags()
	f.StringVar(&grantFlags.customerID, "customer", "", "Customer ID (required)")
	f.IntVar(&grantFlags.amount, "amount", 0, "Points to grant (required, > 0)")
	f.StringVar(&grantFlags.reason, "reason", "", "Reason for the grant (required)")
	_ = grantCmd.MarkFlagRequired("customer")
	_ = grantCmd.MarkFlagRequired("amount")
	_ = grantCmd.MarkFlagRequired("reason")

	// deduct
	var deductFlags struct {
		customerID, reason string
		amount             int
	}
	deductCmd := &cobra.Command{
		Use:   "deduct",
		Short: "Deduct loyalty points from a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.deductPoints.Execute(appcustomer.DeductPointsCommand{
				CustomerID: deductFlags.customerID,
				Amount:     deductFlags.amount,
				Reason:     deductFlags.reason,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			printBalance(result.Points, result.TotalPointsEarned, result.TotalPointsUsed)
			return nil
		},
	}
	f = deductCmd.Flags()
	f.StringVar(&deductFlags.customerID, "customer", "", "Customer ID (required)")
	f.IntVar(&deductFlags.amount, "amount", 0, "Points to deduct (required, > 0)")
	f.StringVar(&deductFlags.reason, "reason", "", "Reason for the deduction (required)")
	_ = deductCmd.MarkFlagRequired("customer")
	_ = deductCmd.MarkFlagRequired("amount")
	_ = deductCmd.MarkFlagRequired("reason")

	// voucher
	var voucherFlags struct {
		customerID string
		points     int
	}
	voucherCmd := &cobra.Command{
		Use:   "voucher",
		Short: "Redeem points for a discount voucher",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.issueVoucher.Execute(appcustomer.IssueVoucherCommand{
				CustomerID:     voucherFlags.customerID,
				PointsToRedeem: voucherFlags.points,
				PointValue:     a.settings.PointValue,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			printVoucher(result.Voucher)
			printBalance(result.Points, result.TotalPointsEarned, result.TotalPointsUsed)
			return nil
		},
	}
	f = voucherCmd.Flags()
	f.StringVar(&voucherFlags.customerID, "customer", "", "Customer ID (required)")
	f.IntVar(&voucherFlags.points, "points", 0, "Points to redeem (required, > 0)")
	_ = voucherCmd.MarkFlagRequired("customer")
	_ = voucherCmd.MarkFlagRequired("points")

	// purchase
	var purchaseFlags struct {
		customerID, invoiceID, amount, status string
	}
	purchaseCmd := &cobra.Command{
		Use:   "purchase",
		Short: "Record a purchase invoice and accrue points",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(purchaseFlags.amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", purchaseFlags.amount, err)
			}
			result, err := a.recordPurchase.Execute(appcustomer.RecordPurchaseCommand{
				CustomerID: purchaseFlags.customerID,
				InvoiceID:  purchaseFlags.invoiceID,
				Amount:     amount,
				Status:     purchaseFlags.status,
				EarnRate:   a.settings.EarnRate,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			fmt.Printf("earned_points: %d\n", result.EarnedPoints)
			printBalance(result.Points, result.TotalPointsEarned, result.TotalPointsUsed)
			return nil
		},
	}
	f = purchaseCmd.Flags()
	f.StringVar(&purchaseFlags.customerID, "customer", "", "Customer ID (required)")
	f.StringVar(&purchaseFlags.invoiceID, "invoice", "", "Invoice number (required)")
	f.StringVar(&purchaseFlags.amount, "amount", "", "Purchase amount in EGP (required)")
	f.StringVar(&purchaseFlags.status, "status", "Delivered", "Order status")
	_ = purchaseCmd.MarkFlagRequired("customer")
	_ = purchaseCmd.MarkFlagRequired("invoice")
	_ = purchaseCmd.MarkFlagRequired("amount")

	// profile
	profileCmd := &cobra.Command{
		Use:   "profile <customer-id>",
		Short: "Show a customer profile with point balance and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.getProfile.Execute(appcustomer.GetCustomerProfileQuery{
				CustomerID: args[0],
			})
			if err != nil {
				return notifyError(err)
			}
			printProfile(result)
			return nil
		},
	}

	// task
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage follow-up tasks",
	}

	var taskCreateFlags struct {
		customerID, reason, details string
	}
	taskCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a follow-up task for a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.createTask.Execute(appfollowup.CreateTaskCommand{
				CustomerID: taskCreateFlags.customerID,
				Reason:     taskCreateFlags.reason,
				Details:    taskCreateFlags.details,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			fmt.Printf("task_id: %s\n", result.TaskID)
			return nil
		},
	}
	f = taskCreateCmd.Flags()
	f.StringVar(&taskCreateFlags.customerID, "customer", "", "Customer ID (required)")
	f.StringVar(&taskCreateFlags.reason, "reason", "", "Follow-up reason (required)")
	f.StringVar(&taskCreateFlags.details, "details", "", "Details")
	_ = taskCreateCmd.MarkFlagRequired("customer")
	_ = taskCreateCmd.MarkFlagRequired("reason")

	var taskCompleteNotes string
	taskCompleteCmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete a pending follow-up task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.completeTask.Execute(appfollowup.CompleteTaskCommand{
				TaskID:          args[0],
				ResolutionNotes: taskCompleteNotes,
			})
			if err != nil {
				return notifyError(err)
			}
			printNotification(result.Notification)
			return nil
		},
	}
	taskCompleteCmd.Flags().StringVar(&taskCompleteNotes, "notes", "", "Resolution notes")

	taskListCmd := &cobra.Command{
		Use:   "list <customer-id>",
		Short: "List pending follow-up tasks for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dbPath, settingsPath)
			if err != nil {
				return err
			}
			result, err := a.listPendingTasks.Execute(appfollowup.ListPendingTasksQuery{
				CustomerID: args[0],
			})
			if err != nil {
				return notifyError(err)
			}
			if len(result.Tasks) == 0 {
				fmt.Println("no pending tasks")
				return nil
			}
			for _, task := range result.Tasks {
				fmt.Printf("%s  %s  %s\n", task.TaskID, task.CreatedAt.Format("02/01/2006"), task.Reason)
			}
			return nil
		},
	}

	taskCmd.AddCommand(taskCreateCmd, taskCompleteCmd, taskListCmd)
	root.AddCommand(registerCmd, grantCmd, deductCmd, voucherCmd, purchaseCmd, profileCmd, taskCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// notifyError 打印用戶可見通知後返回原始錯誤（退出碼非零）
func notifyError(err error) error {
	printNotification(notify.ForError(err))
	return err
}

func printNotification(n notify.Notification) {
	fmt.Printf("[%s] %s\n", n.Severity, n.Message)
}

func printBalance(points, earned, used int) {
	fmt.Printf("points: %d (earned: %d, used: %d)\n", points, earned, used)
}

func printVoucher(v appcustomer.VoucherDTO) {
	fmt.Println("---------------- VOUCHER ----------------")
	fmt.Printf("code:     %s\n", v.Code)
	fmt.Printf("customer: %s\n", v.CustomerName)
	fmt.Printf("amount:   %s EGP\n", v.Amount.String())
	fmt.Printf("issued:   %s\n", v.IssueDate)
	fmt.Printf("expires:  %s\n", v.ExpiryDate)
	fmt.Println("-----------------------------------------")
}

func printProfile(p *appcustomer.CustomerProfileResult) {
	fmt.Printf("customer_id:    %s\n", p.CustomerID)
	fmt.Printf("name:           %s\n", p.Name)
	fmt.Printf("phone:          %s\n", p.Phone)
	if p.Email != "" {
		fmt.Printf("email:          %s\n", p.Email)
	}
	fmt.Printf("governorate:    %s\n", p.Governorate)
	fmt.Printf("type:           %s\n", p.CustomerType)
	fmt.Printf("classification: %s\n", p.Classification)
	fmt.Printf("join_date:      %s\n", p.JoinDate.Format("02/01/2006"))
	printBalance(p.Points, p.TotalPointsEarned, p.TotalPointsUsed)
	fmt.Printf("purchases:      %d (total %s EGP)\n", p.PurchaseCount, p.TotalPurchases.String())
	if len(p.Log) > 0 {
		fmt.Println("history (newest first):")
		for _, entry := range p.Log {
			fmt.Printf("  %s  %-20s  %+d pts  %s\n",
				entry.Date.Format("02/01/2006"), entry.InvoiceID, entry.PointsChange, entry.Details)
		}
	}
}
