package database

import (
	"fmt"

	"logistics-http-service/internal/domain/models"
	Logger "logistics-http-service/pkg/logger"

	"gorm.io/gorm"
)

// Migrate 根据迁移模式执行数据库迁移
//   - auto: 只添加新表、新列和索引
//   - drop: 删除所有表后重建
//   - none: 不做任何修改
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "none":
		Logger.Info("跳过数据库迁移")
		return nil
	case "drop":
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
		if err := dropTables(db); err != nil {
			return err
		}
		return autoMigrate(db)
	case "auto", "":
		return autoMigrate(db)
	default:
		return fmt.Errorf("unsupported migration mode %q", mode)
	}
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("自动迁移失败: %w", err)
	}
	Logger.Info("数据库迁移完成")
	return nil
}

// dropTables 按依赖的逆序删除表
func dropTables(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}
	return nil
}
