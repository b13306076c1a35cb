package initializers

import (
	"context"

	"ops-tools-backend/config"
	"ops-tools-backend/fiberlog"
	approvalhandler "ops-tools-backend/lib/approval"
	approvalpolicyhandler "ops-tools-backend/lib/approval-policy"
	xlsexport "ops-tools-backend/lib/export/xls"
	leavereqhandler "ops-tools-backend/lib/leave-req"
	projecthandler "ops-tools-backend/lib/project"
	pushhandler "ops-tools-backend/lib/push"
	spaceauthhandler "ops-tools-backend/lib/space/auth"
	taskhandler "ops-tools-backend/lib/task"
	taskdependencyhandler "ops-tools-backend/lib/task-dependency"
	connectionhub "ops-tools-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	pushhandler.NewHandler()
	spaceauthhandler.NewHandler()
	approvalpolicyhandler.NewHandler()
	approvalhandler.NewHandler()
	xlsexport.NewHandler()
	leavereqhandler.NewHandler()
	projecthandler.NewHandler()
	taskhandler.NewHandler()
	taskdependencyhandler.NewHandler()
}
